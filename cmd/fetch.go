package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/bundle"
	"github.com/pable/go-draft-metrics/internal/logger"
	"github.com/pable/go-draft-metrics/internal/remote"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url-or-path> [url-or-path...]",
	Short: "Download draft bundles from the record service and import them",
	Long: `Download one or more bundles and import them like 'import' does.

Relative paths are resolved against remote_url ($DRAFTMETRICS_REMOTE_URL).
remote_token, when set, is sent as a bearer token.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	log := logger.Named("fetch")
	client := remote.NewClient(cfg.RemoteURL, cfg.RemoteToken, cfg.FetchTimeout)
	for _, ref := range args {
		cMuted.Printf("Downloading %s...\n", ref)
		b, err := client.Bundle(ctx, ref)
		if err != nil {
			return fmt.Errorf("fetch: %w", err)
		}
		res, err := bundle.Import(ctx, db, b, log)
		if err != nil {
			return fmt.Errorf("%s: %w", ref, err)
		}
		printImport(ref, res)
	}
	return nil
}
