package verifier_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/leetle.net/internal/adapter/logging"
	"gitlab.com/leetle.net/internal/config"
	"gitlab.com/leetle.net/internal/core/services/runner"
	"gitlab.com/leetle.net/internal/core/services/verifier"
	"gitlab.com/leetle.net/internal/domain"
)

const twoSumPython = `
import sys, json

def two_sum(nums, target):
    seen = {}
    for i, n in enumerate(nums):
        if target - n in seen:
            return [seen[target - n], i]
        seen[n] = i
    return []

lines = sys.stdin.read().strip().split("\n")
print(json.dumps(two_sum(json.loads(lines[0]), int(lines[1])), separators=(",", ":")))
`

const palindromeAlwaysFalseJS = `
const fs = require('fs');
fs.readFileSync(0, 'utf-8');
console.log("false");
`

const fizzBuzzWithoutMain = `
import java.util.*;

class FizzBuzz {
    public static void main(String[] args) {
        Scanner sc = new Scanner(System.in);
        int n = sc.nextInt();
        StringBuilder sb = new StringBuilder("[");
        for (int i = 1; i <= n; i++) {
            if (i > 1) sb.append(",");
            String v = i % 15 == 0 ? "FizzBuzz" : i % 3 == 0 ? "Fizz" : i % 5 == 0 ? "Buzz" : Integer.toString(i);
            sb.append("\"").append(v).append("\"");
        }
        System.out.println(sb.append("]"));
    }
}
`

const binarySearchInfiniteLoop = `
import sys
lines = sys.stdin.read().strip().split("\n")
lo, hi = 0, 1
while lo <= hi:
    pass
print(-1)
`

const reverseStringPython = `
import sys, json
s = json.loads(sys.stdin.read())
s.reverse()
print(json.dumps(s, separators=(",", ":")))
`

func requireTools(t *testing.T, tools ...string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping toolchain scenario in short mode")
	}
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not installed", tool)
		}
	}
}

func loadCases(t *testing.T, name string) []domain.TestCase {
	t.Helper()
	raw, err := os.ReadFile("testdata/problems.json")
	require.NoError(t, err)

	var all map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &all))

	cases, err := domain.ParseTestCases(all[name])
	require.NoError(t, err)
	require.NotEmpty(t, cases)
	return cases
}

// countingExecutor counts calls and keeps the last result
type countingExecutor struct {
	inner *runner.Runner
	calls atomic.Int32
	last  domain.ExecutionResult
}

func (c *countingExecutor) Execute(ctx context.Context, l domain.Language, src, stdin string, budget time.Duration) domain.ExecutionResult {
	c.calls.Add(1)
	c.last = c.inner.Execute(ctx, l, src, stdin, budget)
	return c.last
}

func newCounting(t *testing.T, budget time.Duration) *countingExecutor {
	t.Helper()
	cfg := config.NewRunnerConfig()
	cfg.TimeoutBudget = budget
	cfg.WorkRoot = t.TempDir()
	r, err := runner.New(cfg, logging.NewNopLogger())
	require.NoError(t, err)
	return &countingExecutor{inner: r}
}

func TestScenario_TwoSumPython(t *testing.T) {
	requireTools(t, "python3")
	ce := newCounting(t, 30*time.Second)
	v := verifier.NewVerifier(ce, 30*time.Second, logging.NewNopLogger(), nil)

	outcome := v.Verify(context.Background(), loadCases(t, "two_sum"), domain.LanguagePython, twoSumPython)

	assert.True(t, outcome.Correct)
	assert.Greater(t, outcome.TotalElapsed, time.Duration(0))
	assert.EqualValues(t, 2, ce.calls.Load())
}

func TestScenario_PalindromeJavaScriptShortCircuits(t *testing.T) {
	requireTools(t, "node")
	ce := newCounting(t, 30*time.Second)
	v := verifier.NewVerifier(ce, 30*time.Second, logging.NewNopLogger(), nil)

	outcome := v.Verify(context.Background(), loadCases(t, "palindrome_number"), domain.LanguageJavaScript, palindromeAlwaysFalseJS)

	assert.False(t, outcome.Correct)
	assert.Greater(t, outcome.TotalElapsed, time.Duration(0))
	assert.EqualValues(t, 1, ce.calls.Load())
}

func TestScenario_FizzBuzzJavaWithoutMain(t *testing.T) {
	requireTools(t, "javac", "java")
	ce := newCounting(t, 30*time.Second)
	v := verifier.NewVerifier(ce, 30*time.Second, logging.NewNopLogger(), nil)

	outcome := v.Verify(context.Background(), loadCases(t, "fizzbuzz"), domain.LanguageJava, fizzBuzzWithoutMain)

	assert.False(t, outcome.Correct)
	assert.Greater(t, outcome.TotalElapsed, time.Duration(0))
	require.NotNil(t, outcome.Failure)
	assert.Equal(t, domain.ClassificationRuntimeError, outcome.Failure.Classification)
	assert.Contains(t, outcome.Failure.Output, "Main")
}

func TestScenario_BinarySearchInfiniteLoopTimesOut(t *testing.T) {
	requireTools(t, "python3")
	budget := 2 * time.Second
	ce := newCounting(t, budget)
	v := verifier.NewVerifier(ce, budget, logging.NewNopLogger(), nil)

	start := time.Now()
	outcome := v.Verify(context.Background(), loadCases(t, "binary_search"), domain.LanguagePython, binarySearchInfiniteLoop)

	assert.False(t, outcome.Correct)
	assert.Equal(t, budget, outcome.TotalElapsed)
	assert.Equal(t, domain.ClassificationTimedOut, ce.last.Classification)
	assert.Less(t, time.Since(start), budget+3*time.Second)
	assert.EqualValues(t, 1, ce.calls.Load())
}

// sumExecutor records each per-case elapsed time
type sumExecutor struct {
	inner *countingExecutor
	sum   time.Duration
}

func (s *sumExecutor) Execute(ctx context.Context, l domain.Language, src, stdin string, budget time.Duration) domain.ExecutionResult {
	res := s.inner.Execute(ctx, l, src, stdin, budget)
	s.sum += res.Elapsed
	return res
}

func TestScenario_ReverseStringAllPass(t *testing.T) {
	requireTools(t, "python3")
	se := &sumExecutor{inner: newCounting(t, 30*time.Second)}
	v := verifier.NewVerifier(se, 30*time.Second, logging.NewNopLogger(), nil)

	outcome := v.Verify(context.Background(), loadCases(t, "reverse_string"), domain.LanguagePython, reverseStringPython)

	assert.True(t, outcome.Correct)
	assert.Equal(t, se.sum, outcome.TotalElapsed)
	assert.Equal(t, 2, outcome.Executed)
}
