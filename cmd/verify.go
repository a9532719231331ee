package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"gitlab.com/leetle.net/internal/adapter/logging"
	"gitlab.com/leetle.net/internal/config"
	"gitlab.com/leetle.net/internal/core/services/runner"
	"gitlab.com/leetle.net/internal/core/services/verifier"
	"gitlab.com/leetle.net/internal/domain"
)

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Grade a local solution against a JSON test-case file",
		ArgsUsage: "<source file>",
		Flags: []cli.Flag{
			envFlag,
			&cli.StringFlag{
				Name:     "lang",
				Aliases:  []string{"l"},
				Usage:    "python, javascript or java",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "cases",
				Aliases:  []string{"c"},
				Usage:    `JSON file holding [{"input": ..., "output": ...}]`,
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per test case budget (default RUNNER_TIMEOUT_SEC)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log runner activity to stderr",
			},
		},
		Action: verify,
	}
}

func verify(ctx context.Context, cmd *cli.Command) error {
	if err := loadEnv(cmd); err != nil {
		return err
	}
	if cmd.Args().Len() != 1 {
		return cli.Exit("expected exactly one source file", 2)
	}

	language, err := domain.ParseLanguage(cmd.String("lang"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	source, err := os.ReadFile(cmd.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read source: %v", err), 2)
	}
	rawCases, err := os.ReadFile(cmd.String("cases"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read test cases: %v", err), 2)
	}
	cases, err := domain.ParseTestCases(rawCases)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	runnerCfg := config.NewRunnerConfig()
	if d := cmd.Duration("timeout"); d > 0 {
		runnerCfg.TimeoutBudget = d
	}

	logger := logging.NewNopLogger()
	if cmd.Bool("verbose") {
		logger = logging.NewZapLogger("debug")
		defer logger.Sync()
	}

	codeRunner, err := runner.New(runnerCfg, logger.Named("runner"))
	if err != nil {
		return err
	}
	outcome := verifier.NewVerifier(codeRunner, runnerCfg.TimeoutBudget, logger.Named("verifier"), nil).
		Verify(ctx, cases, language, string(source))

	printReport(cmd.Root().Writer, cases, outcome)
	if !outcome.Correct {
		return cli.Exit("", 1)
	}
	return nil
}

func printReport(w io.Writer, cases []domain.TestCase, outcome domain.VerificationOutcome) {
	if w == nil {
		w = os.Stdout
	}
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	if outcome.Correct {
		pass.Fprintf(w, "PASSED")
		fmt.Fprintf(w, " %d/%d test cases in %.3fs\n", outcome.Executed, len(cases), outcome.TotalElapsed.Seconds())
		return
	}

	if len(cases) == 0 {
		fail.Fprintln(w, "FAILED no test cases to run")
		return
	}

	fail.Fprintf(w, "FAILED")
	fmt.Fprintf(w, " on test case %d of %d after %.3fs\n", outcome.FailedIndex+1, len(cases), outcome.TotalElapsed.Seconds())
	if outcome.Failure == nil || outcome.FailedIndex < 0 {
		return
	}

	tc := cases[outcome.FailedIndex]
	dim.Fprintf(w, "  classification: ")
	fmt.Fprintln(w, outcome.Failure.Classification)
	dim.Fprintln(w, "  input:")
	fmt.Fprintln(w, indent(tc.Input))
	dim.Fprintln(w, "  expected:")
	fmt.Fprintln(w, indent(tc.ExpectedOutput))
	dim.Fprintln(w, "  got:")
	fmt.Fprintln(w, indent(outcome.Failure.Output))
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}
