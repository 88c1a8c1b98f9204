package fixtures

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kashguard/go-txverify/internal/chain"
	"github.com/kashguard/go-txverify/internal/config"
	"github.com/kashguard/go-txverify/internal/fixture"
	"github.com/kashguard/go-txverify/internal/metrics"
	"github.com/kashguard/go-txverify/internal/util/command"
	"github.com/kashguard/go-txverify/internal/verify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const caseFlag string = "case"

func newVerify() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Sign every fixture case with the reference engine and verify the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := cmd.Flags().GetStringSlice(caseFlag)
			if err != nil {
				return err
			}
			bindings := map[string]string{
				"fixtures.path":         pathFlag,
				"metrics.textfile_path": textfileFlag,
			}
			return command.WithConfig(cmd, bindings, func(ctx context.Context, cfg config.Config) error {
				return runVerify(ctx, cfg, chain.NewEngine(), names, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().String(pathFlag, "", "Fixture file or directory")
	cmd.Flags().String(textfileFlag, "", "Write prometheus metrics to this textfile")
	cmd.Flags().StringSlice(caseFlag, nil, "Only run the named cases")
	return cmd
}

func runVerify(ctx context.Context, cfg config.Config, signer verify.Signer, names []string, out io.Writer) error {
	runID := uuid.New()
	logger := log.With().Str("run_id", runID.String()).Logger()

	cases, err := fixture.Load(cfg.Fixtures.Path)
	if err != nil {
		return err
	}
	cases, err = selectCases(cases, names)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	start := time.Now()
	failed := 0

	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "verification interrupted")
		}

		report, err := c.Run(signer)
		passed := c.Passed(err)
		recorder.Observe(strings.ToLower(c.Coin), err)

		event := logger.Debug()
		if !passed {
			failed++
			event = logger.Warn()
		}
		if report != nil {
			event = event.Str("txid", report.Txid).Int64("fee", report.Fee)
		}
		event.Err(err).
			Str("case", c.Name).
			Str("coin", c.Coin).
			Str("result", metrics.Result(err)).
			Bool("passed", passed).
			Msg("Verified fixture case")

		if passed {
			fmt.Fprintf(out, "PASS %s\n", c.Name)
		} else {
			fmt.Fprintf(out, "FAIL %s: %v\n", c.Name, err)
		}
	}

	recorder.Finish()
	if cfg.Metrics.TextfilePath != "" {
		if err := recorder.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			return err
		}
	}

	logger.Info().
		Int("cases", len(cases)).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Fixture verification finished")

	if failed > 0 {
		return errors.Errorf("%d of %d cases failed", failed, len(cases))
	}
	return nil
}

func selectCases(cases []*fixture.Case, names []string) ([]*fixture.Case, error) {
	if len(names) == 0 {
		return cases, nil
	}

	selected := make([]*fixture.Case, 0, len(names))
	for _, name := range names {
		idx := slices.IndexFunc(cases, func(c *fixture.Case) bool { return c.Name == name })
		if idx < 0 {
			return nil, errors.Errorf("case %q not found", name)
		}
		selected = append(selected, cases[idx])
	}
	return selected, nil
}
