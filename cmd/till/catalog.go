package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/cli"
)

func catalogCmd() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the product catalog",
		Long:  `Display the products offered on the register grid. Placeholder slots are hidden unless --all is given.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			products, err := loadCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Price"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 6),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 8))

			for _, p := range products {
				if p.Placeholder() {
					if showAll {
						fmt.Fprintf(w, "%s\t%s\t%s\t\n", p.ID, cli.SubtleStyle.Render("(empty slot)"), p.Category)
					}
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, cli.FormatAmount(p.Price))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "include placeholder slots")
	return cmd
}
