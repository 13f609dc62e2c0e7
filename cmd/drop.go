package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/storage"
)

var (
	dropForce bool
	dropMatch string
)

// dropCmd deletes one match, or the whole database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete a stored match or the whole draft database",
	Long: `With --match, delete one match with its games and picks.
Without it, permanently delete the SQLite draft database. Re-import your bundles afterwards to rebuild.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropMatch, "match", "", "delete only this match id")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropMatch != "" {
		return dropOne(cmd, dropMatch)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", cfg.DBPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(cfg.DBPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL side files; absent when the database was closed cleanly.
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(cfg.DBPath + suffix)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", cfg.DBPath)
	return nil
}

func dropOne(cmd *cobra.Command, id string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.DeleteMatch(cmd.Context(), id)
	if errors.Is(err, storage.ErrMatchNotFound) {
		cWarn.Fprintf(os.Stdout, "No match with id %q.\n", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted match %s\n", id)
	return nil
}
