package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.ListMatchSummaries(cmd.Context())
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'draftmetrics import <bundle.json>' to add some.")
		return nil
	}
	report.PrintMatchList(os.Stdout, list)
	return nil
}
