package config

import (
	"os"
	"time"
)

const DefaultTimeoutBudget = 30 * time.Second

// RunnerConfig configures the code execution engine. Command lines are
// shell-style strings split into argv by the runner.
type RunnerConfig struct {
	TimeoutBudget time.Duration
	WorkRoot      string
	PythonCmd     string
	NodeCmd       string
	JavacCmd      string
	JavaCmd       string
	MaxConcurrent int
}

func NewRunnerConfig() *RunnerConfig {
	return &RunnerConfig{
		TimeoutBudget: getSecondsEnv("RUNNER_TIMEOUT_SEC", DefaultTimeoutBudget),
		WorkRoot:      getEnv("RUNNER_WORK_ROOT", os.TempDir()),
		PythonCmd:     getEnv("RUNNER_PYTHON_CMD", "python3"),
		NodeCmd:       getEnv("RUNNER_NODE_CMD", "node"),
		JavacCmd:      getEnv("RUNNER_JAVAC_CMD", "javac"),
		JavaCmd:       getEnv("RUNNER_JAVA_CMD", "java"),
		MaxConcurrent: getIntEnv("RUNNER_MAX_CONCURRENT", 4),
	}
}
