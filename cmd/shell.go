package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/aggregator"
	"github.com/pable/go-draft-metrics/internal/model"
	"github.com/pable/go-draft-metrics/internal/report"
	"github.com/pable/go-draft-metrics/internal/service"
	"github.com/pable/go-draft-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cError    = color.New(color.FgRed, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// session is the REPL state: one database handle and a sticky query scope
// that 'scope' edits and every query inherits.
type session struct {
	db       *storage.DB
	analyzer *service.Analyzer
	scope    aggregator.Filter
	top      int
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s := &session{db: db, analyzer: newAnalyzer(db), top: 10}
	ctx := cmd.Context()

	cGreeting.Println("draftmetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("draftmetrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			s.list(ctx)
		case "scope":
			s.setScope(args)
		case "top":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: top <n>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				cError.Fprintf(os.Stderr, "invalid row count %q\n", args[0])
				continue
			}
			s.top = n
		case "stats":
			s.stats(ctx, strings.Join(args, " "))
		case "team":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: team <name>")
				continue
			}
			s.team(ctx, strings.Join(args, " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return scanner.Err()
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"scope [key=value...]", "show or set version, mode, tournament (empty value clears)"},
		{"top <n>", "rows per table"},
		{"stats [team]", "aggregate statistics for the scope, optionally for one team"},
		{"team <name>", "lane profile and draft recommendations"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-24s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *session) setScope(args []string) {
	next := s.scope
	for _, a := range args {
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			cError.Fprintf(os.Stderr, "expected key=value, got %q\n", a)
			return
		}
		switch key {
		case "version":
			next.VersionID = val
		case "mode":
			next.Mode = model.Mode(strings.ToUpper(val))
		case "tournament":
			next.TournamentID = val
		default:
			cError.Fprintf(os.Stderr, "unknown scope key %q\n", key)
			return
		}
	}
	if !next.Mode.Valid() {
		cError.Fprintf(os.Stderr, "invalid mode %q\n", next.Mode)
		return
	}
	s.scope = next
	cMuted.Printf("version=%q mode=%q tournament=%q\n", s.scope.VersionID, s.scope.Mode, s.scope.TournamentID)
}

func (s *session) list(ctx context.Context) {
	list, err := s.db.ListMatchSummaries(ctx)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(list) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	report.PrintMatchList(os.Stdout, list)
}

func (s *session) stats(ctx context.Context, team string) {
	f := s.scope
	f.TeamName = team
	st, err := s.analyzer.Stats(ctx, f)
	if s.failed(err) {
		return
	}
	renderStats(os.Stdout, st, team, s.top)
}

func (s *session) team(ctx context.Context, name string) {
	rep, err := s.analyzer.Insights(ctx, name, s.scope)
	if s.failed(err) {
		return
	}
	heroes, err := s.db.Heroes(ctx)
	if s.failed(err) {
		return
	}
	renderTeam(os.Stdout, rep, heroes, s.top)
}

// failed prints err, if any, and reports whether the command should stop.
func (s *session) failed(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrNoData):
		cWarn.Println(report.NoData)
	default:
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return true
}
