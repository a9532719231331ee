package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/leetle.net/internal/config"
	"gitlab.com/leetle.net/internal/core/ports/primary"
	"gitlab.com/leetle.net/internal/core/ports/secondary"
	"gitlab.com/leetle.net/internal/domain"
)

var _ secondary.CodeExecutor = (*Runner)(nil)

// Runner executes untrusted source once per call in a disposable work directory.
// It keeps no state between calls and is safe for concurrent use.
type Runner struct {
	strategies    map[domain.Language]Strategy
	workRoot      string
	defaultBudget time.Duration
	logger        primary.Logger
	observer      secondary.ExecutionObserver
}

// Option configures a Runner
type Option func(*Runner)

// WithObserver reports every run to o
func WithObserver(o secondary.ExecutionObserver) Option {
	return func(r *Runner) {
		r.observer = o
	}
}

// New builds a strategy for every supported language and fails if any is missing
func New(cfg *config.RunnerConfig, logger primary.Logger, options ...Option) (*Runner, error) {
	r := &Runner{
		strategies:    make(map[domain.Language]Strategy),
		workRoot:      cfg.WorkRoot,
		defaultBudget: cfg.TimeoutBudget,
		logger:        logger,
	}
	if r.defaultBudget <= 0 {
		r.defaultBudget = config.DefaultTimeoutBudget
	}
	for _, language := range domain.Languages() {
		s, err := newStrategy(language, cfg)
		if err != nil {
			return nil, err
		}
		r.strategies[language] = s
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

// DefaultBudget is the budget applied when Execute is given a non-positive one
func (r *Runner) DefaultBudget() time.Duration {
	return r.defaultBudget
}

// Execute runs sourceCode against stdin. It never fails: every problem is
// reported through the result's Classification.
func (r *Runner) Execute(ctx context.Context, language domain.Language, sourceCode, stdin string, budget time.Duration) (result domain.ExecutionResult) {
	if budget <= 0 {
		budget = r.defaultBudget
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Runner panicked", "language", language, "panic", p)
			result = domain.ExecutionResult{
				Output:         fmt.Sprintf("Error: %v", p),
				Elapsed:        budget,
				Classification: domain.ClassificationRuntimeError,
				ExitCode:       -1,
			}
		}
		if r.observer != nil {
			r.observer.ObserveRun(language, result)
		}
	}()

	strategy, ok := r.strategies[language]
	if !ok {
		return domain.ExecutionResult{
			Output:         fmt.Sprintf("Error: unsupported language %q", language),
			Elapsed:        budget,
			Classification: domain.ClassificationEnvironmentError,
			ExitCode:       -1,
		}
	}

	dir, err := os.MkdirTemp(r.workRoot, "leetle-run-*")
	if err != nil {
		r.logger.Error("Failed to create work directory", "root", r.workRoot, "error", err)
		return domain.ExecutionResult{
			Output:         "Error: failed to prepare execution directory",
			Elapsed:        budget,
			Classification: domain.ClassificationEnvironmentError,
			ExitCode:       -1,
		}
	}
	defer r.cleanup(dir)

	if err := os.WriteFile(filepath.Join(dir, strategy.SourceFile()), []byte(sourceCode), 0o600); err != nil {
		r.logger.Error("Failed to write source file", "dir", dir, "error", err)
		return domain.ExecutionResult{
			Output:         "Error: " + err.Error(),
			Elapsed:        budget,
			Classification: domain.ClassificationRuntimeError,
			ExitCode:       -1,
		}
	}

	result = strategy.Run(ctx, dir, stdin, budget)
	r.logger.Debug("Execution finished",
		"language", language,
		"classification", result.Classification,
		"exitCode", result.ExitCode,
		"elapsed", result.Elapsed)
	return result
}

func (r *Runner) cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		r.logger.Error("Failed to remove work directory", "dir", dir, "error", err)
	}
}
