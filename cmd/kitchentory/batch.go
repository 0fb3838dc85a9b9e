package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jburchel/kitchentory/internal/cli"
	"github.com/jburchel/kitchentory/internal/model"
	"github.com/jburchel/kitchentory/internal/storage"
)

func batchCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Parse a directory of receipt email files",
		Long: `Parse every .txt and .eml file in a directory and print a summary of
how many receipts qualified for auto-processing. Files may start with
"From:" and "Subject:" header lines followed by a blank line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := emailFiles(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No email files found"))
				return nil
			}

			p, err := newParser()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var store *storage.SQLiteStorage
			if save {
				store, err = initStorage(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
			}

			bar := progressbar.Default(int64(len(files)), "parsing")

			var autoProcessed, review int
			for _, path := range files {
				email, err := readEmailFile(path)
				if err != nil {
					return err
				}

				result := p.Parse(email)
				if result.Decision == model.DecisionAutoProcess {
					autoProcessed++
				} else {
					review++
				}

				if save {
					if _, err := store.SaveReceipt(ctx, result.Receipt, result.Decision); err != nil {
						return fmt.Errorf("failed to save %s: %w", path, err)
					}
				}

				_ = bar.Add(1)
			}

			fmt.Println()
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Auto-processed: %d", autoProcessed)))
			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Manual review:  %d", review)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "persist results to receipt history")
	return cmd
}

func emailFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".txt" || ext == ".eml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// readEmailFile reads an email file, peeling off optional From:/Subject:
// header lines before a blank line.
func readEmailFile(path string) (*model.IncomingEmail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	email := &model.IncomingEmail{
		Body:       string(data),
		ReceivedAt: time.Now(),
	}

	lines := strings.SplitN(string(data), "\n\n", 2)
	if len(lines) == 2 {
		header := lines[0]
		hasHeader := false
		for _, line := range strings.Split(header, "\n") {
			switch {
			case strings.HasPrefix(line, "From:"):
				email.Sender = strings.TrimSpace(strings.TrimPrefix(line, "From:"))
				hasHeader = true
			case strings.HasPrefix(line, "Subject:"):
				email.Subject = strings.TrimSpace(strings.TrimPrefix(line, "Subject:"))
				hasHeader = true
			}
		}
		if hasHeader {
			email.Body = lines[1]
		}
	}

	return email, nil
}
