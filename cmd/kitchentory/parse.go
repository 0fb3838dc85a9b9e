package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jburchel/kitchentory/internal/cli"
	"github.com/jburchel/kitchentory/internal/model"
)

func parseCmd() *cobra.Command {
	var (
		sender  string
		subject string
		file    string
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a single receipt email",
		Long: `Parse one receipt email body (from a file or stdin) and print the
extracted items, confidence, and import decision.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readBody(file)
			if err != nil {
				return err
			}

			p, err := newParser()
			if err != nil {
				return err
			}

			email := &model.IncomingEmail{
				Sender:     sender,
				Subject:    subject,
				Body:       body,
				ReceivedAt: time.Now(),
			}
			result := p.Parse(email)

			fmt.Print(cli.RenderResult(result))

			if save {
				ctx := cmd.Context()
				store, err := initStorage(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()

				id, err := store.SaveReceipt(ctx, result.Receipt, result.Decision)
				if err != nil {
					return fmt.Errorf("failed to save receipt: %w", err)
				}
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Saved as receipt #%d", id)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "sender email address")
	cmd.Flags().StringVar(&subject, "subject", "", "email subject line")
	cmd.Flags().StringVarP(&file, "file", "f", "", "email body file (default: stdin)")
	cmd.Flags().BoolVar(&save, "save", false, "persist the result to receipt history")

	return cmd
}

func readBody(file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}
