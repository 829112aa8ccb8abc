package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/cli"
	"github.com/tillworks/till/internal/ledger"
)

func historyCmd() *cobra.Command {
	var (
		monthOffset int
		method      string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past sales",
		Long:  `List recorded sales for a month, most recent first, optionally restricted to one payment method.`,
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

			stats := ledger.Compute(l.Transactions(), time.Now(), monthOffset, methodFilter)
			if len(stats.Filtered) == 0 {
				fmt.Println(cli.InfoStyle.Render("No sales recorded for this month."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Time"),
				cli.BoldStyle.Render("Method"),
				cli.BoldStyle.Render("Items"),
				cli.BoldStyle.Render("Total"))

			for _, txn := range stats.Filtered {
				parts := make([]string, 0, len(txn.Items))
				for _, item := range txn.Items {
					parts = append(parts, fmt.Sprintf("%sx%d", item.Name, item.Quantity))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.Time().Format("2006-01-02 15:04"),
					string(txn.Method),
					strings.Join(parts, ", "),
					cli.FormatAmount(txn.Total))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&monthOffset, "month", 0, "month offset (0 = current, 1 = previous, ...)")
	cmd.Flags().StringVar(&method, "method", "", "filter by payment method (cash, leke, mobile)")

	cmd.AddCommand(historyDeleteCmd())
	return cmd
}

func historyDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Permanently delete one sale",
		Long:  `Remove a recorded sale from the ledger. This cannot be undone, so the command asks for confirmation first.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			l, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := l.Get(id)
			if err != nil {
				return err
			}

			if !force {
				confirmer := cli.NewConfirmer(os.Stdin, os.Stdout)
				question := fmt.Sprintf("Permanently delete sale %s (%s from %s)? This cannot be undone.",
					txn.ID, cli.FormatAmount(txn.Total), txn.Time().Format("2006-01-02 15:04"))
				ok, err := confirmer.Confirm(ctx, question)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted, nothing deleted."))
					return nil
				}
			}

			if err := l.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Deleted sale %s.", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}
