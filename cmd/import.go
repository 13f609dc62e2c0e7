package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/bundle"
	"github.com/pable/go-draft-metrics/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import <bundle.json> [bundle.json...]",
	Short: "Import heroes, draft matches and rosters from JSON bundles",
	Long: `Import one or more JSON bundles of the form

  {"heroes":  [{"id": "...", "name": "...", "iconUrl": "..."}],
   "matches": [{"id": "...", "versionId": "...", "matchType": "scrim_simulator",
                "status": "finished", "games": [{"winnerSide": "Blue", "picks": [...]}]}],
   "rosters": {"Team Flash": {"Jungle": "Sofm", "Mid": "..."}}}

Files ending in .gz or .zst are decompressed. Matches without an id get a
random one. Re-importing a match id replaces it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	log := logger.Named("import")
	for _, path := range args {
		b, err := bundle.ReadFile(path)
		if err != nil {
			return err
		}
		res, err := bundle.Import(cmd.Context(), db, b, log)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		printImport(path, res)
	}
	return nil
}

func printImport(source string, res bundle.Result) {
	fmt.Fprintf(os.Stdout, "%s: %d heroes, %d matches, %d roster entries\n",
		source, res.Heroes, res.Matches, res.Players)
	if res.Skipped > 0 {
		cWarn.Fprintf(os.Stdout, "  skipped %d roster entries with unknown roles\n", res.Skipped)
	}
}
