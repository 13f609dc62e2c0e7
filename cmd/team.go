package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/report"
	"github.com/pable/go-draft-metrics/internal/service"
)

var (
	teamFilter filterFlags
	teamTop    int
)

var teamCmd = &cobra.Command{
	Use:   "team <name>",
	Short: "Lane profile and draft recommendations for a team",
	Long: `Build the team's lane profile and print its ban priorities (both ban phases),
late-pick win conditions, flex picks, lane counters and per-lane dominance.`,
	Args: cobra.ExactArgs(1),
	RunE: runTeam,
}

func init() {
	teamFilter.register(teamCmd)
	teamCmd.Flags().IntVar(&teamTop, "top", 10, "rows per ranking")
}

func runTeam(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	rep, err := newAnalyzer(db).Insights(ctx, args[0], teamFilter.filter())
	if errors.Is(err, service.ErrNoData) {
		cWarn.Fprintln(os.Stdout, report.NoData)
		return nil
	}
	if err != nil {
		return err
	}
	if rep.Profile.Games == 0 {
		cMuted.Fprintf(os.Stdout, "No finished games found for %q.\n", args[0])
		return nil
	}

	heroes, err := db.Heroes(ctx)
	if err != nil {
		return err
	}

	renderTeam(os.Stdout, rep, heroes, teamTop)
	return nil
}

func renderTeam(w io.Writer, rep *service.TeamReport, heroes model.HeroLookup, top int) {
	in := rep.Insights
	report.PrintProfile(w, rep.Profile, heroes)
	cHeader.Fprintln(w, "\nBan priority: phase 1")
	report.PrintBanPriority(w, in.BanPhase1, heroes, top)
	cHeader.Fprintln(w, "\nBan priority: phase 2")
	report.PrintBanPriority(w, in.BanPhase2, heroes, top)
	cHeader.Fprintln(w, "\nWin conditions")
	report.PrintWinConditions(w, in.WinConditions, heroes, top)
	cHeader.Fprintln(w, "\nFlex picks")
	report.PrintFlexPicks(w, in.FlexPicks, heroes)
	cHeader.Fprintln(w, "\nLane counters")
	report.PrintLaneCounters(w, in.LaneCounters, heroes)
	cHeader.Fprintln(w, "\nLane dominance")
	report.PrintDominance(w, in.Dominance, heroes)
}
