package domain

import (
	"fmt"

	"gitlab.com/leetle.net/internal/static/errs"
)

// Language identifies a supported submission runtime
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJava       Language = "java"
)

// Languages returns every supported language in declaration order
func Languages() []Language {
	return []Language{LanguagePython, LanguageJavaScript, LanguageJava}
}

// ParseLanguage maps a client-supplied identifier onto the closed set
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errs.UnsupportedLanguage, s)
}

// DisplayName is the capitalised identifier used in user-facing markers
func (l Language) DisplayName() string {
	switch l {
	case LanguagePython:
		return "Python"
	case LanguageJavaScript:
		return "Javascript"
	case LanguageJava:
		return "Java"
	default:
		return string(l)
	}
}

func (l Language) String() string {
	return string(l)
}
