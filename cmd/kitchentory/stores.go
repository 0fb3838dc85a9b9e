package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jburchel/kitchentory/internal/cli"
	"github.com/jburchel/kitchentory/internal/grammar"
)

func storesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List supported stores",
		Long:  `Display every registered store grammar with its support tier and confidence ceiling.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			registry := grammar.NewRegistry()

			fmt.Println(cli.TitleStyle.Render("Supported stores"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STORE\tTIER\tCEILING\tPATTERNS")
			for _, store := range registry.Stores() {
				g := registry.For(store)
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\n",
					store.DisplayName(), store.Tier(), store.ConfidenceCeiling(),
					len(g.ItemLinePatterns))
			}
			return w.Flush()
		},
	}
}
