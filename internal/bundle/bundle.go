// Package bundle reads and imports JSON draft bundles: a hero catalogue, raw
// matches and team rosters. Bundles may be gzip or zstd compressed.
package bundle

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-draft-metrics/internal/logger"
	"github.com/pable/go-draft-metrics/internal/model"
)

// Bundle is the import format.
type Bundle struct {
	Heroes  []model.Hero                 `json:"heroes"`
	Matches []model.DraftMatch           `json:"matches"`
	Rosters map[string]map[string]string `json:"rosters"`
}

// Compression of an encoded bundle.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

// CompressionOf guesses the compression from a file name or URL suffix.
func CompressionOf(name string) Compression {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		return Zstd
	case strings.HasSuffix(name, ".gz"):
		return Gzip
	}
	return None
}

// Decode reads one bundle from r.
func Decode(r io.Reader, c Compression) (*Bundle, error) {
	src := r
	switch c {
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case Gzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	var b Bundle
	if err := json.NewDecoder(src).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &b, nil
}

// ReadFile decodes the bundle at path.
func ReadFile(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	b, err := Decode(f, CompressionOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Store is the write surface Import needs.
type Store interface {
	InsertHeroes(ctx context.Context, heroes []model.Hero) error
	InsertMatch(ctx context.Context, m model.DraftMatch) error
	SetRosterPlayer(ctx context.Context, team string, role model.Role, player string) error
}

// Result counts what Import wrote.
type Result struct {
	Heroes  int
	Matches int
	Players int
	Skipped int
}

// Import writes b into s. Matches without an id get a random one and matches
// without a status are stored as finished. Roster entries naming an unknown
// role are skipped and counted.
func Import(ctx context.Context, s Store, b *Bundle, log logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	var res Result

	if len(b.Heroes) > 0 {
		if err := s.InsertHeroes(ctx, b.Heroes); err != nil {
			return res, fmt.Errorf("insert heroes: %w", err)
		}
		res.Heroes = len(b.Heroes)
	}

	for _, m := range b.Matches {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.Status == "" {
			m.Status = model.StatusFinished
		}
		if err := s.InsertMatch(ctx, m); err != nil {
			return res, fmt.Errorf("insert match %s: %w", m.ID, err)
		}
		res.Matches++
	}

	for team, lanes := range b.Rosters {
		for r, player := range lanes {
			role, ok := model.ParseRole(r)
			if !ok {
				log.Warn(ctx, "skipping roster entry", logger.String("team", team), logger.String("role", r))
				res.Skipped++
				continue
			}
			if err := s.SetRosterPlayer(ctx, team, role, player); err != nil {
				return res, fmt.Errorf("set roster %s/%s: %w", team, role, err)
			}
			res.Players++
		}
	}
	return res, nil
}
