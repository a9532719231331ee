package domain

import "time"

// Classification describes how a single runner invocation ended
type Classification string

const (
	ClassificationCompleted        Classification = "completed"
	ClassificationTimedOut         Classification = "timed_out"
	ClassificationCompileError     Classification = "compile_error"
	ClassificationRuntimeError     Classification = "runtime_error"
	ClassificationEnvironmentError Classification = "environment_error"
)

// StderrMarker separates captured stdout from captured stderr in Output
const StderrMarker = "\nSTDERR: "

// ExecutionResult is the outcome of running one source unit against one stdin payload
type ExecutionResult struct {
	Output         string
	Elapsed        time.Duration
	Classification Classification
	ExitCode       int
}

// VerificationOutcome is the aggregate verdict over a problem's test cases.
// Failure is kept for logs only and never reaches a client.
type VerificationOutcome struct {
	Correct      bool
	TotalElapsed time.Duration
	Executed     int
	FailedIndex  int
	Failure      *ExecutionResult
}
