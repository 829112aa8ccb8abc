package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/cli"
)

func insightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insight",
		Short: "Get AI advice on recent sales",
		Long: `Send the most recent sales to the configured text-generation provider
and print a short piece of business advice. Without an API key, or with
an empty ledger, a fixed message is printed instead and nothing is sent.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, store, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			advice := insightService().Summarize(cmd.Context(), l.Transactions())
			fmt.Println(cli.BoxStyle.Render("💡 " + advice))
			return nil
		},
	}
}
