package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/aggregator"
	"github.com/pable/go-draft-metrics/internal/model"
)

// filterFlags are the query-scope flags shared by stats and team.
type filterFlags struct {
	version    string
	mode       string
	tournament string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.version, "version", "", "game version id (falls back to default_version)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "ALL, SCRIM_SUMMARY or FULL_SIMULATOR")
	cmd.Flags().StringVar(&f.tournament, "tournament", "", "tournament id")
}

func (f *filterFlags) filter() aggregator.Filter {
	return aggregator.Filter{
		VersionID:    strings.TrimSpace(f.version),
		Mode:         model.Mode(strings.ToUpper(strings.TrimSpace(f.mode))),
		TournamentID: strings.TrimSpace(f.tournament),
	}
}
