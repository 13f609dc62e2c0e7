package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pable/go-draft-metrics/internal/model"
)

// Query selects finished matches. Empty fields do not filter.
type Query struct {
	VersionID    string
	Mode         model.Mode
	TournamentID string
	TeamName     string // exact or substring match against either side
}

// InsertHeroes upserts hero lookup entries in one transaction.
func (db *DB) InsertHeroes(ctx context.Context, heroes []model.Hero) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO heroes(id, name, icon_url) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, h := range heroes {
		if _, err := stmt.ExecContext(ctx, string(h.ID), h.Name, h.IconURL); err != nil {
			return fmt.Errorf("insert hero %s: %w", h.ID, err)
		}
	}
	return tx.Commit()
}

// InsertHero upserts a single hero.
func (db *DB) InsertHero(ctx context.Context, h model.Hero) error {
	return db.InsertHeroes(ctx, []model.Hero{h})
}

// Heroes returns the full hero lookup.
func (db *DB) Heroes(ctx context.Context) (model.HeroLookup, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, icon_url FROM heroes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var heroes []model.Hero
	for rows.Next() {
		var h model.Hero
		var id string
		if err := rows.Scan(&id, &h.Name, &h.IconURL); err != nil {
			return nil, err
		}
		h.ID = model.HeroID(id)
		heroes = append(heroes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return model.NewHeroLookup(heroes), nil
}

// InsertMatch stores a match with its games and picks, replacing any
// previous copy of the same match id.
func (db *DB) InsertMatch(ctx context.Context, m model.DraftMatch) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM picks WHERE match_id = ?`, m.ID); err != nil {
		return fmt.Errorf("clear picks of %s: %w", m.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE match_id = ?`, m.ID); err != nil {
		return fmt.Errorf("clear games of %s: %w", m.ID, err)
	}

	status := m.Status
	if status == "" {
		status = model.StatusFinished
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO matches(id, version_id, tournament_id, team_a, team_b, mode, match_type, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.VersionID, m.TournamentID, m.TeamA, m.TeamB,
		string(m.Mode), string(m.MatchType), string(status),
	); err != nil {
		return fmt.Errorf("insert match %s: %w", m.ID, err)
	}

	gameStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO games(match_id, id, game_number, winner_side, blue_team_name, red_team_name)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer gameStmt.Close()

	pickStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO picks(match_id, game_id, seq, hero_id, type, side, position_index, assigned_role)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer pickStmt.Close()

	for i, g := range m.Games {
		gameID := g.ID
		if gameID == "" {
			gameID = fmt.Sprintf("%s-g%d", m.ID, i+1)
		}
		if _, err := gameStmt.ExecContext(ctx, m.ID, gameID, g.GameNumber,
			string(g.WinnerSide), g.BlueTeamName, g.RedTeamName); err != nil {
			return fmt.Errorf("insert game %s: %w", gameID, err)
		}
		for seq, p := range g.Picks {
			if _, err := pickStmt.ExecContext(ctx, m.ID, gameID, seq, string(p.HeroID), string(p.Type),
				p.Side, p.PositionIndex, p.AssignedRole); err != nil {
				return fmt.Errorf("insert pick %d of game %s: %w", seq, gameID, err)
			}
		}
	}
	return tx.Commit()
}

// DeleteMatch removes a match and, through cascades, its games and picks.
func (db *DB) DeleteMatch(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrMatchNotFound)
	}
	return nil
}

// ListMatches returns finished matches inside q with their games and picks,
// oldest first.
func (db *DB) ListMatches(ctx context.Context, q Query) ([]model.DraftMatch, error) {
	where := []string{"m.status = 'finished'"}
	var args []any
	if q.VersionID != "" {
		where = append(where, "m.version_id = ?")
		args = append(args, q.VersionID)
	}
	if q.TournamentID != "" {
		where = append(where, "m.tournament_id = ?")
		args = append(args, q.TournamentID)
	}
	switch q.Mode {
	case model.ModeScrimSummary:
		where = append(where, "m.match_type = ?")
		args = append(args, string(model.MatchScrimSummary))
	case model.ModeFullSimulator:
		where = append(where, "m.match_type IN (?, ?)")
		args = append(args, string(model.MatchScrimSimulator), string(model.MatchSimulation))
	}
	if q.TeamName != "" {
		// instr is a case-sensitive literal substring test, the same rule
		// model.SideOfTeam applies to each game.
		where = append(where, `(instr(m.team_a, ?) > 0 OR instr(m.team_b, ?) > 0 OR EXISTS (
			SELECT 1 FROM games g WHERE g.match_id = m.id
			AND (instr(g.blue_team_name, ?) > 0 OR instr(g.red_team_name, ?) > 0)))`)
		args = append(args, q.TeamName, q.TeamName, q.TeamName, q.TeamName)
	}
	scope := strings.Join(where, " AND ")

	rows, err := db.conn.QueryContext(ctx, `
		SELECT m.id, m.version_id, m.tournament_id, m.team_a, m.team_b, m.mode, m.match_type, m.status
		FROM matches m
		WHERE `+scope+`
		ORDER BY m.imported_at, m.id`, args...)
	if err != nil {
		return nil, err
	}

	var matches []model.DraftMatch
	index := make(map[string]int)
	for rows.Next() {
		var m model.DraftMatch
		var mode, matchType, status string
		if err := rows.Scan(&m.ID, &m.VersionID, &m.TournamentID, &m.TeamA, &m.TeamB,
			&mode, &matchType, &status); err != nil {
			rows.Close()
			return nil, err
		}
		m.Mode = model.Mode(mode)
		m.MatchType = model.MatchType(matchType)
		m.Status = model.Status(status)
		index[m.ID] = len(matches)
		matches = append(matches, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return matches, nil
	}

	if err := db.loadGames(ctx, scope, args, matches, index); err != nil {
		return nil, err
	}
	return matches, nil
}

// loadGames attaches games and picks to the matches selected by scope. With a
// single connection the nested reads run after the outer cursor is closed.
func (db *DB) loadGames(ctx context.Context, scope string, args []any, matches []model.DraftMatch, index map[string]int) error {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT g.id, g.match_id, g.game_number, g.winner_side, g.blue_team_name, g.red_team_name,
		       p.seq, p.hero_id, p.type, p.side, p.position_index, p.assigned_role
		FROM games g
		JOIN matches m ON m.id = g.match_id
		LEFT JOIN picks p ON p.match_id = g.match_id AND p.game_id = g.id
		WHERE `+scope+`
		ORDER BY g.match_id, g.game_number, g.id, p.seq`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			gameID, matchID, winner, blue, red string
			gameNumber                         int
			seq, pos                           sql.NullInt64
			heroID, kind, side, role           sql.NullString
		)
		if err := rows.Scan(&gameID, &matchID, &gameNumber, &winner, &blue, &red,
			&seq, &heroID, &kind, &side, &pos, &role); err != nil {
			return err
		}
		i, ok := index[matchID]
		if !ok {
			continue
		}
		m := &matches[i]
		n := len(m.Games)
		if n == 0 || m.Games[n-1].ID != gameID {
			m.Games = append(m.Games, model.DraftGame{
				ID:           gameID,
				MatchID:      matchID,
				GameNumber:   gameNumber,
				WinnerSide:   model.Winner(winner),
				BlueTeamName: blue,
				RedTeamName:  red,
			})
			n++
		}
		if !seq.Valid {
			continue
		}
		g := &m.Games[n-1]
		g.Picks = append(g.Picks, model.DraftPick{
			GameID:        gameID,
			HeroID:        model.HeroID(heroID.String),
			Type:          model.PickType(kind.String),
			Side:          side.String,
			PositionIndex: int(pos.Int64),
			AssignedRole:  role.String,
		})
	}
	return rows.Err()
}

// ListMatchSummaries returns every stored match without its drafts, newest first.
func (db *DB) ListMatchSummaries(ctx context.Context) ([]model.MatchSummary, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT m.id, m.version_id, m.tournament_id, m.team_a, m.team_b, m.match_type, m.status,
		       m.imported_at, COUNT(g.id)
		FROM matches m
		LEFT JOIN games g ON g.match_id = m.id
		GROUP BY m.id
		ORDER BY m.imported_at DESC, m.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		var matchType, status string
		if err := rows.Scan(&s.ID, &s.VersionID, &s.TournamentID, &s.TeamA, &s.TeamB,
			&matchType, &status, &s.ImportedAt, &s.Games); err != nil {
			return nil, err
		}
		s.MatchType = model.MatchType(matchType)
		s.Status = model.Status(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetRosterPlayer records who plays role for team.
func (db *DB) SetRosterPlayer(ctx context.Context, team string, role model.Role, player string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO rosters(team, role, player) VALUES (?, ?, ?)`,
		team, string(role), player)
	return err
}

// Roster returns the role -> player map for team. Unknown teams yield an empty map.
func (db *DB) Roster(ctx context.Context, team string) (map[model.Role]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT role, player FROM rosters WHERE team = ?`, team)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.Role]string)
	for rows.Next() {
		var role, player string
		if err := rows.Scan(&role, &player); err != nil {
			return nil, err
		}
		out[model.Role(role)] = player
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
