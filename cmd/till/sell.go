package main

import (
	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/tui"
)

func sellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sell",
		Short: "Open the interactive register",
		Long: `Launch the full-screen register: pick products off the grid, adjust
quantities, and settle the order in cash, by transfer, or by mobile
wallet. The history tab shows totals and past sales.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := loadCatalog()
			if err != nil {
				return err
			}

			l, store, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return tui.Run(tui.Config{
				Ledger:   l,
				Insight:  insightService(),
				Products: products,
			})
		},
	}
}
