package fixtures

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kashguard/go-txverify/internal/config"
	"github.com/kashguard/go-txverify/internal/fixture"
	"github.com/kashguard/go-txverify/internal/util/command"
	"github.com/spf13/cobra"
)

func newList() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fixture cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithConfig(cmd, map[string]string{"fixtures.path": pathFlag}, func(_ context.Context, cfg config.Config) error {
				return runList(cfg, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().String(pathFlag, "", "Fixture file or directory")
	return cmd
}

func runList(cfg config.Config, out io.Writer) error {
	cases, err := fixture.Load(cfg.Fixtures.Path)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOIN\tTEMPLATE\tEXPECT\tSOURCE")
	for _, c := range cases {
		template := "builder"
		switch {
		case c.Psbt != "":
			template = "psbt"
		case c.Builder == nil:
			template = "-"
		}
		expect := "pass"
		if c.ExpectError != "" {
			expect = c.ExpectError
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Name, c.Coin, template, expect, c.Source)
	}
	return w.Flush()
}
