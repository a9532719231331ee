package runner

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

const (
	// waitDelay bounds how long Wait keeps draining pipes after the process is killed
	waitDelay = 500 * time.Millisecond

	// maxCapture caps each captured stream
	maxCapture = 4 << 20
)

// processResult is the raw outcome of one child process
type processResult struct {
	stdout    string
	stderr    string
	exitCode  int
	elapsed   time.Duration
	timedOut  bool
	cancelled bool
	notFound  bool
	err       error
}

func (p processResult) succeeded() bool {
	return !p.timedOut && !p.cancelled && !p.notFound && p.err == nil && p.exitCode == 0
}

// runProcess starts argv in dir with stdin attached and waits for it to exit,
// killing its whole process group once budget elapses or ctx is done.
func runProcess(ctx context.Context, argv []string, dir, stdin string, budget time.Duration) processResult {
	if len(argv) == 0 {
		return processResult{notFound: true, exitCode: -1}
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return processResult{notFound: true, exitCode: -1, err: err}
	}

	execCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	cmd := exec.CommandContext(execCtx, path, argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(stdin)
	stdout := &cappedBuffer{limit: maxCapture}
	stderr := &cappedBuffer{limit: maxCapture}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)
	killProcessGroup(cmd)

	res := processResult{
		stdout:  stdout.String(),
		stderr:  stderr.String(),
		elapsed: elapsed,
	}
	if err == nil {
		return res
	}
	// a clean exit whose background children kept the pipes open; the group
	// kill above has reaped them and what was captured stands
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() && execCtx.Err() == nil {
		return res
	}

	res.exitCode = -1
	switch {
	case ctx.Err() != nil:
		res.cancelled = true
	case errors.Is(execCtx.Err(), context.DeadlineExceeded):
		res.timedOut = true
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.exitCode = exitErr.ExitCode()
		} else if errors.Is(err, fs.ErrNotExist) || errors.Is(err, exec.ErrNotFound) {
			res.notFound = true
			res.err = err
		} else {
			res.err = err
		}
	}
	return res
}

// cappedBuffer keeps the first limit bytes and silently discards the rest
type cappedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if room := c.limit - c.buf.Len(); room > 0 {
		if len(p) > room {
			c.buf.Write(p[:room])
		} else {
			c.buf.Write(p)
		}
	}
	return len(p), nil
}

func (c *cappedBuffer) String() string {
	return c.buf.String()
}
