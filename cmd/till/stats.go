package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/cli"
	"github.com/tillworks/till/internal/ledger"
	"github.com/tillworks/till/internal/model"
)

func statsCmd() *cobra.Command {
	var (
		monthOffset int
		method      string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show revenue totals",
		Long:  `Print today's and the current month's revenue, plus the total for a selected month with an optional payment-method rollup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			methodFilter, err := parseMethodFlag(method)
			if err != nil {
				return err
			}

			l, store, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			now := time.Now()
			stats := ledger.Compute(l.Transactions(), now, monthOffset, methodFilter)

			fmt.Println(cli.TitleStyle.Render("Revenue"))
			fmt.Printf("  today       %s\n", cli.BoldStyle.Render(cli.FormatAmount(stats.Today)))
			fmt.Printf("  this month  %s\n", cli.BoldStyle.Render(cli.FormatAmount(stats.Month)))

			start, _ := ledger.MonthBounds(now, monthOffset)
			scope := start.Format("2006-01")
			if methodFilter != "" {
				scope += " · " + string(methodFilter)
			}
			fmt.Printf("  %-11s %s  (%d sales)\n", scope, cli.BoldStyle.Render(cli.FormatAmount(stats.FilteredTotal)), len(stats.Filtered))

			if methodFilter == "" {
				fmt.Println()
				fmt.Println(cli.TitleStyle.Render("By method (" + start.Format("2006-01") + ")"))
				for _, m := range []model.PaymentMethod{model.PaymentCash, model.PaymentLeke, model.PaymentMobile} {
					s := ledger.Compute(l.Transactions(), now, monthOffset, m)
					fmt.Printf("  %-8s %s\n", string(m), cli.FormatAmount(s.FilteredTotal))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&monthOffset, "month", 0, "month offset (0 = current, 1 = previous, ...)")
	cmd.Flags().StringVar(&method, "method", "", "restrict the monthly total to one payment method")
	return cmd
}
