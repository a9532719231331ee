package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/shlex"

	"gitlab.com/leetle.net/internal/config"
	"gitlab.com/leetle.net/internal/domain"
)

// EntryPoint is the class a compiled submission must declare
const EntryPoint = "Main"

// Strategy knows how to turn a source file in a work directory into an ExecutionResult
type Strategy interface {
	// SourceFile is the name the source is written under inside the work directory
	SourceFile() string
	Run(ctx context.Context, dir, stdin string, budget time.Duration) domain.ExecutionResult
}

// newStrategy is the single place a Language is bound to its toolchain
func newStrategy(language domain.Language, cfg *config.RunnerConfig) (Strategy, error) {
	switch language {
	case domain.LanguagePython:
		return newInterpreted(language, "main.py", cfg.PythonCmd)
	case domain.LanguageJavaScript:
		return newInterpreted(language, "main.js", cfg.NodeCmd)
	case domain.LanguageJava:
		return newCompiled(language, EntryPoint+".java", EntryPoint, cfg.JavacCmd, cfg.JavaCmd)
	default:
		return nil, fmt.Errorf("no execution strategy for language %q", language)
	}
}

func splitCommand(language domain.Language, cmdline string) ([]string, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s command %q: %w", language, cmdline, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty %s command", language)
	}
	return argv, nil
}

// interpreted runs `<interpreter...> <source>`
type interpreted struct {
	language domain.Language
	file     string
	argv     []string
}

func newInterpreted(language domain.Language, file, cmdline string) (*interpreted, error) {
	argv, err := splitCommand(language, cmdline)
	if err != nil {
		return nil, err
	}
	return &interpreted{language: language, file: file, argv: argv}, nil
}

func (s *interpreted) SourceFile() string {
	return s.file
}

func (s *interpreted) Run(ctx context.Context, dir, stdin string, budget time.Duration) domain.ExecutionResult {
	argv := append(slices.Clone(s.argv), filepath.Join(dir, s.file))
	return classify(s.language, runProcess(ctx, argv, dir, stdin, budget), budget)
}

// compiled runs `<compiler...> <source>` and then `<runtime...> -cp <dir> <entry>`
type compiled struct {
	language    domain.Language
	file        string
	entry       string
	compileArgv []string
	runArgv     []string
}

func newCompiled(language domain.Language, file, entry, compileCmd, runCmd string) (*compiled, error) {
	compileArgv, err := splitCommand(language, compileCmd)
	if err != nil {
		return nil, err
	}
	runArgv, err := splitCommand(language, runCmd)
	if err != nil {
		return nil, err
	}
	return &compiled{
		language:    language,
		file:        file,
		entry:       entry,
		compileArgv: compileArgv,
		runArgv:     runArgv,
	}, nil
}

func (s *compiled) SourceFile() string {
	return s.file
}

func (s *compiled) Run(ctx context.Context, dir, stdin string, budget time.Duration) domain.ExecutionResult {
	compileArgv := append(slices.Clone(s.compileArgv), s.file)
	build := runProcess(ctx, compileArgv, dir, "", budget)
	if !build.succeeded() {
		if build.exitCode > 0 {
			diag := strings.TrimSpace(build.stderr)
			if diag == "" {
				diag = strings.TrimSpace(build.stdout)
			}
			return domain.ExecutionResult{
				Output:         "Compilation Error: " + diag,
				Elapsed:        build.elapsed,
				Classification: domain.ClassificationCompileError,
				ExitCode:       build.exitCode,
			}
		}
		return classify(s.language, build, budget)
	}

	runArgv := append(slices.Clone(s.runArgv), "-cp", dir, s.entry)
	result := classify(s.language, runProcess(ctx, runArgv, dir, stdin, budget), budget)
	if result.Classification != domain.ClassificationTimedOut && result.Classification != domain.ClassificationEnvironmentError {
		result.Elapsed += build.elapsed
	}
	return result
}

// classify folds a raw process outcome into an ExecutionResult
func classify(language domain.Language, p processResult, budget time.Duration) domain.ExecutionResult {
	switch {
	case p.notFound:
		return domain.ExecutionResult{
			Output:         fmt.Sprintf("Error: %s interpreter not found. Please install it.", language.DisplayName()),
			Elapsed:        budget,
			Classification: domain.ClassificationEnvironmentError,
			ExitCode:       -1,
		}
	case p.timedOut:
		return domain.ExecutionResult{
			Output:         fmt.Sprintf("Error: Code execution timed out (%s)", budget),
			Elapsed:        budget,
			Classification: domain.ClassificationTimedOut,
			ExitCode:       -1,
		}
	case p.cancelled:
		return domain.ExecutionResult{
			Output:         "Error: execution cancelled",
			Elapsed:        p.elapsed,
			Classification: domain.ClassificationRuntimeError,
			ExitCode:       -1,
		}
	case p.err != nil:
		return domain.ExecutionResult{
			Output:         "Error: " + p.err.Error(),
			Elapsed:        budget,
			Classification: domain.ClassificationRuntimeError,
			ExitCode:       -1,
		}
	}

	class := domain.ClassificationCompleted
	if p.exitCode != 0 {
		class = domain.ClassificationRuntimeError
	}
	return domain.ExecutionResult{
		Output:         formatOutput(p.stdout, p.stderr),
		Elapsed:        p.elapsed,
		Classification: class,
		ExitCode:       p.exitCode,
	}
}

// formatOutput right-trims stdout and appends stderr under the STDERR marker
func formatOutput(stdout, stderr string) string {
	out := strings.TrimRight(stdout, " \t\r\n\v\f")
	if stderr != "" {
		out += domain.StderrMarker + strings.TrimSpace(stderr)
	}
	return out
}
