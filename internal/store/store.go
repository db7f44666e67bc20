// Package store persists designs and their evaluations in SQLite.
package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bebop/poly/seqhash"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"foldlab-core/rna"
)

// ErrNotFound is returned when no design matches.
var ErrNotFound = errors.New("design not found")

// Design is one stored design.
type Design struct {
	ID        string // seqhash of the sequence
	PuzzleID  string // "" for free folds
	Sequence  string
	Structure string
	Engine    string
	Score     float64
	GC        float64
	Satisfied bool
	// Evaluation is the JSON-encoded api.EvaluationV1, if any.
	Evaluation string
	CreatedAt  time.Time
}

// Store persists designs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a SQLite design store and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if err := applyMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "run migrations")
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// DesignID hashes an RNA sequence into a stable, content-derived ID.
// Cut markers are not hashable and are replaced by the strand count suffix.
func DesignID(seq rna.Sequence) (string, error) {
	strands := seq.Strands()
	bases := strings.ReplaceAll(seq.String(), string(rna.Cut), "")
	if bases == "" {
		return "", errors.Wrap(rna.ErrBadBase, "cannot hash an empty sequence")
	}
	h, err := seqhash.Hash(bases, seqhash.RNA, false, false)
	if err != nil {
		return "", errors.Wrap(err, "seqhash")
	}
	if len(strands) > 1 {
		parts := make([]string, len(strands))
		for i, n := range strands {
			parts[i] = strconv.Itoa(n)
		}
		h += "_" + strings.Join(parts, "-")
	}
	return h, nil
}

// Save inserts or replaces a design. ID is derived from Sequence when empty
// and CreatedAt defaults to now.
func (s *Store) Save(ctx context.Context, d Design) (Design, error) {
	if err := ctx.Err(); err != nil {
		return Design{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Design{}, errors.New("storage is not configured")
	}
	seq, err := rna.ParseSequence(d.Sequence)
	if err != nil {
		return Design{}, errors.Wrap(err, "design sequence")
	}
	d.Sequence = seq.String()
	if d.ID == "" {
		if d.ID, err = DesignID(seq); err != nil {
			return Design{}, err
		}
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT OR REPLACE INTO designs (
		   id, puzzle_id, sequence, structure, engine, score, gc, satisfied, evaluation, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.PuzzleID, d.Sequence, d.Structure, d.Engine, d.Score, d.GC,
		boolToInt(d.Satisfied), d.Evaluation, d.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return Design{}, errors.Wrap(err, "save design")
	}
	return d, nil
}

// Get returns one design by ID and puzzle.
func (s *Store) Get(ctx context.Context, id, puzzleID string) (Design, error) {
	if err := ctx.Err(); err != nil {
		return Design{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, puzzle_id, sequence, structure, engine, score, gc, satisfied, evaluation, created_at
		 FROM designs WHERE id = ? AND puzzle_id = ?`, id, puzzleID)
	d, err := scanDesign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Design{}, errors.Wrapf(ErrNotFound, "%s", id)
	}
	return d, err
}

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	PuzzleID      string
	SatisfiedOnly bool
	Limit         int
}

// List returns designs newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Design, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := `SELECT id, puzzle_id, sequence, structure, engine, score, gc, satisfied, evaluation, created_at FROM designs`
	var (
		where []string
		args  []any
	)
	if f.PuzzleID != "" {
		where = append(where, "puzzle_id = ?")
		args = append(args, f.PuzzleID)
	}
	if f.SatisfiedOnly {
		where = append(where, "satisfied = 1")
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list designs")
	}
	defer rows.Close()

	var out []Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list designs")
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDesign(sc scanner) (Design, error) {
	var (
		d         Design
		satisfied int
		created   int64
	)
	if err := sc.Scan(&d.ID, &d.PuzzleID, &d.Sequence, &d.Structure, &d.Engine, &d.Score, &d.GC, &satisfied, &d.Evaluation, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Design{}, err
		}
		return Design{}, errors.Wrap(err, "scan design")
	}
	d.Satisfied = satisfied != 0
	d.CreatedAt = time.UnixMilli(created).UTC()
	return d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
