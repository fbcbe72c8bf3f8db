package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCompaniesCommand(ctx *commandContext) *cobra.Command {
	var showAliases bool

	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List the configured companies and the aliases the matcher recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cfg.Companies) == 0 {
				fmt.Fprintln(out, "No companies configured. Add [[companies]] entries to the configuration file.")
				return nil
			}

			matcher := newMatcherFromConfig(cfg, logger)
			rows := make([][]string, 0, len(cfg.Companies))
			for _, name := range matcher.Companies() {
				row := []string{name}
				if showAliases {
					row = append(row, strings.Join(matcher.Aliases(name), ", "))
				}
				rows = append(rows, row)
			}

			headers := []string{"Company"}
			if showAliases {
				headers = append(headers, "Recognized Aliases")
			}
			fmt.Fprintln(out, renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAliases, "aliases", "a", false, "Include generated and configured aliases")
	return cmd
}
