package errs

import "errors"

var (
	UnsupportedLanguage = errors.New("unsupported language")
	CodeRequired        = errors.New("language and code are required")
	NoProblemToday      = errors.New("no problem available today")
	NoTestCases         = errors.New("problem has no test cases")
	MalformedTestCase   = errors.New("malformed test case")
	UnknownUser         = errors.New("user not found")
)

var (
	InvalidToken    = errors.New("invalid token")
	MissingToken    = errors.New("authorization header missing")
	GeneratingToken = errors.New("error generating token")
	InternalError   = errors.New("internal error")
)
