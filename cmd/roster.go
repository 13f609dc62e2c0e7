package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/profile"
)

var rosterCmd = &cobra.Command{
	Use:   "roster <team> [role player]",
	Short: "Show a team's roster, or assign a player to a lane",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("expected <team> or <team> <role> <player>, got %d args", len(args))
		}
		return nil
	},
	RunE: runRoster,
}

func runRoster(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	team := args[0]
	if len(args) == 3 {
		role, ok := model.ParseRole(args[1])
		if !ok {
			return fmt.Errorf("unknown role %q", args[1])
		}
		if err := db.SetRosterPlayer(ctx, team, role, args[2]); err != nil {
			return fmt.Errorf("set roster: %w", err)
		}
	}

	roster, err := db.Roster(ctx, team)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	for _, r := range model.Roles {
		player, ok := roster[r]
		if !ok {
			cMuted.Fprintf(os.Stdout, "%-8s %s\n", r, profile.Placeholder(r))
			continue
		}
		fmt.Fprintf(os.Stdout, "%-8s %s\n", r, player)
	}
	return nil
}
