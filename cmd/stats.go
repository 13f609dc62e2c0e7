package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/report"
	"github.com/pable/go-draft-metrics/internal/service"
)

var (
	statsFilter filterFlags
	statsTeam   string
	statsTop    int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Hero, combo, side and draft-order statistics for a query scope",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsFilter.register(statsCmd)
	statsCmd.Flags().StringVar(&statsTeam, "team", "", "restrict to games a team played (exact or substring match)")
	statsCmd.Flags().IntVar(&statsTop, "top", 20, "rows per table")
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	f := statsFilter.filter()
	f.TeamName = statsTeam

	st, err := newAnalyzer(db).Stats(cmd.Context(), f)
	if errors.Is(err, service.ErrNoData) {
		cWarn.Fprintln(os.Stdout, report.NoData)
		return nil
	}
	if err != nil {
		return err
	}
	if st.TotalGames == 0 {
		cMuted.Fprintln(os.Stdout, "No finished games in scope.")
		return nil
	}

	renderStats(os.Stdout, st, f.TeamName, statsTop)
	return nil
}

func renderStats(w io.Writer, st *model.Stats, team string, top int) {
	report.PrintOverview(w, st)
	if team != "" {
		cHeader.Fprintf(w, "Sides (%s)\n", team)
		report.PrintTeamSides(w, st)
	}
	cHeader.Fprintln(w, "\nHeroes")
	report.PrintHeroTable(w, st, top)
	cHeader.Fprintln(w, "\nCombos")
	report.PrintComboTable(w, st, top)
	fmt.Fprintln(w)
	cHeader.Fprintln(w, "Draft order")
	report.PrintDraftOrder(w, st)
}
