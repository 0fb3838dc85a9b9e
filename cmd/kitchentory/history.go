package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jburchel/kitchentory/internal/cli"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently parsed receipts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			receipts, err := store.ListReceipts(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list receipts: %w", err)
			}
			if len(receipts) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No receipts in history yet"))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTORE\tORDER\tCONFIDENCE\tDECISION\tPARSED AT")
			for _, r := range receipts {
				orderID := r.Receipt.OrderID
				if orderID == "" {
					orderID = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\n",
					r.ID, r.Receipt.Store.DisplayName(), orderID,
					r.Receipt.OverallConfidence, r.Decision,
					r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum receipts to show")
	return cmd
}
