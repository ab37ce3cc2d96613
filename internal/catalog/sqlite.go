package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/leapstack-labs/leapddl/pkg/core"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the catalog at path and migrates it.
// Use ":memory:" for an in-memory catalog.
func Open(path string, logger *slog.Logger) (*SQLiteStore, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping catalog: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db, logger), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{db: db, logger: logger}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a run with its entities and diagnostics in one transaction.
func (s *SQLiteStore) RecordRun(ctx context.Context, in RunInput) (_ *Run, err error) {
	run := &Run{
		ID:          uuid.NewString(),
		Dialect:     in.Dialect,
		Sources:     in.Sources,
		StartedAt:   time.Now().UTC(),
		EntityCount: len(in.Entities),
	}
	if run.Sources == nil {
		run.Sources = []string{}
	}
	for _, d := range in.Diagnostics {
		switch d.Severity {
		case core.SeverityError:
			run.ErrorCount++
		case core.SeverityWarning:
			run.WarningCount++
		}
	}

	sources, err := json.Marshal(run.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sources: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, dialect, sources, started_at, entity_count, error_count, warning_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Dialect, string(sources), run.StartedAt.Format(timeLayout),
		run.EntityCount, run.ErrorCount, run.WarningCount,
	); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	for i, e := range in.Entities {
		var body []byte
		body, err = json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("failed to encode entity %s: %w", e.QualifiedName(), err)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO entities (run_id, seq, kind, name, body) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, e.EntityKind().GroupKey(), e.QualifiedName(), string(body),
		); err != nil {
			return nil, fmt.Errorf("failed to insert entity %s: %w", e.QualifiedName(), err)
		}
	}

	for i, d := range in.Diagnostics {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO diagnostics (run_id, seq, statement, line, col, severity, message)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, d.Statement, d.Pos.Line, d.Pos.Column, d.Severity.String(), d.Err.Error(),
		); err != nil {
			return nil, fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}

	s.logger.Debug("recorded run",
		slog.String("id", run.ID),
		slog.String("dialect", run.Dialect),
		slog.Int("entities", run.EntityCount))
	return run, nil
}

// timeLayout is fixed width so that started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var runColumns = []string{"id", "dialect", "sources", "started_at", "entity_count", "error_count", "warning_count"}

// ListRuns returns the most recent runs first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	q := sq.Select(runColumns...).From("runs").OrderBy("started_at DESC", "rowid DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun finds a run by full ID or unique ID prefix.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if id == "" {
		return nil, ErrRunNotFound
	}

	query, args, err := sq.Select(runColumns...).From("runs").
		Where("substr(id, 1, ?) = ?", len(id), id).
		Limit(2).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var found []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}
}

// Entities returns the entities of a run in parse order.
func (s *SQLiteStore) Entities(ctx context.Context, runID string) ([]Entity, error) {
	query, args, err := sq.Select("seq", "kind", "name", "body").From("entities").
		Where(sq.Eq{"run_id": runID}).OrderBy("seq").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entities := []Entity{}
	for rows.Next() {
		var e Entity
		var body string
		if err := rows.Scan(&e.Seq, &e.Kind, &e.Name, &body); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		e.Body = json.RawMessage(body)
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// Diagnostics returns the diagnostics of a run in report order.
func (s *SQLiteStore) Diagnostics(ctx context.Context, runID string) ([]Diagnostic, error) {
	query, args, err := sq.Select("statement", "line", "col", "severity", "message").From("diagnostics").
		Where(sq.Eq{"run_id": runID}).OrderBy("seq").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load diagnostics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	diags := []Diagnostic{}
	for rows.Next() {
		var d Diagnostic
		if err := rows.Scan(&d.Statement, &d.Line, &d.Column, &d.Severity, &d.Message); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		diags = append(diags, d)
	}
	return diags, rows.Err()
}

// DeleteRun removes a run. Entities and diagnostics go with it.
func (s *SQLiteStore) DeleteRun(ctx context.Context, runID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var sources, startedAt string
	if err := row.Scan(&run.ID, &run.Dialect, &sources, &startedAt,
		&run.EntityCount, &run.ErrorCount, &run.WarningCount); err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(sources), &run.Sources); err != nil {
		return nil, fmt.Errorf("run %s: bad sources: %w", run.ID, err)
	}
	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("run %s: bad start time: %w", run.ID, err)
	}
	run.StartedAt = t
	return &run, nil
}
