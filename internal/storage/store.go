// Package storage is the relational storage collaborator: it owns table
// creation and idempotent bulk writes for the pipeline's output tables.
// Both Postgres and SQLite backends are supported through sqlx.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"aihwetl/internal/config"
	"aihwetl/pkg/contracts/domain"
)

// Store wraps a database handle and knows how to materialize separation
// tables as relations.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Open connects to the configured database and pings it. Callers own Close.
func Open(cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// NewStore wraps an existing handle, used by tests.
func NewStore(db *sqlx.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Persist creates the target relation if absent and writes the table with
// duplicate-safe upserts keyed on (year, state, dimension columns). Writing
// the same table twice leaves the relation unchanged, so persistence is
// idempotent across reruns.
func (s *Store) Persist(ctx context.Context, table *domain.SeparationTable, target string) error {
	return s.write(ctx, table, target, true)
}

// AppendStaging creates the staging relation if absent and appends the
// table's records without a key constraint. The staging relation keeps every
// observation as reshaped, before aggregation.
func (s *Store) AppendStaging(ctx context.Context, table *domain.SeparationTable, target string) error {
	return s.write(ctx, table, target, false)
}

func (s *Store) write(ctx context.Context, table *domain.SeparationTable, target string, keyed bool) error {
	rel, err := sanitizeIdentifier(target)
	if err != nil {
		return fmt.Errorf("invalid target relation name %q: %w", target, err)
	}
	dims, err := sanitizeAll(table.DimensionColumns)
	if err != nil {
		return fmt.Errorf("invalid dimension column in table: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createTableStmt(rel, dims, keyed)); err != nil {
		return fmt.Errorf("failed to create relation %s: %w", rel, err)
	}

	stmt := tx.Rebind(insertStmt(rel, dims, keyed))
	args := make([]interface{}, 0, len(dims)+3)
	for _, rec := range table.SortedCopy() {
		args = args[:0]
		args = append(args, rec.Year, rec.State)
		for _, d := range table.DimensionColumns {
			args = append(args, rec.Dimension(d))
		}
		args = append(args, rec.Separations)
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("failed to write record to %s: %w", rel, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit write to %s: %w", rel, err)
	}

	s.logger.Info("table persisted",
		slog.String("relation", rel),
		slog.Int("records", table.Len()),
		slog.Bool("keyed", keyed))
	return nil
}

// createTableStmt builds the CREATE TABLE IF NOT EXISTS statement for a
// separation table. Dimension columns default to the empty string so the key
// never contains a null component.
func createTableStmt(rel string, dims []string, keyed bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %q (\n", rel)
	b.WriteString("\tyear INTEGER NOT NULL,\n")
	b.WriteString("\tstate TEXT NOT NULL,\n")
	for _, d := range dims {
		fmt.Fprintf(&b, "\t%q TEXT NOT NULL DEFAULT '',\n", d)
	}
	b.WriteString("\tseparations DOUBLE PRECISION NOT NULL")
	if keyed {
		b.WriteString(",\n\tPRIMARY KEY (year, state")
		for _, d := range dims {
			fmt.Fprintf(&b, ", %q", d)
		}
		b.WriteString(")")
	}
	b.WriteString("\n)")
	return b.String()
}

// insertStmt builds the insert statement with ? placeholders; callers rebind
// for the active driver. Keyed writes resolve conflicts by replacing the
// measurement, which both Postgres and SQLite express as ON CONFLICT.
func insertStmt(rel string, dims []string, keyed bool) string {
	cols := []string{"year", "state"}
	for _, d := range dims {
		cols = append(cols, fmt.Sprintf("%q", d))
	}
	cols = append(cols, "separations")

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %q (%s) VALUES (%s)",
		rel,
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))

	if keyed {
		key := []string{"year", "state"}
		for _, d := range dims {
			key = append(key, fmt.Sprintf("%q", d))
		}
		fmt.Fprintf(&b, " ON CONFLICT (%s) DO UPDATE SET separations = excluded.separations",
			strings.Join(key, ", "))
	}
	return b.String()
}

// sanitizeIdentifier lowercases a relation or column name and verifies it is
// a plain SQL identifier. Dimension names come from sheet headers, so they
// are checked rather than trusted.
func sanitizeIdentifier(name string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return "", fmt.Errorf("empty identifier")
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return "", fmt.Errorf("identifier %q starts with a digit", name)
			}
		default:
			return "", fmt.Errorf("identifier %q contains %q", name, r)
		}
	}
	switch s {
	case "year", "state", "separations":
		return "", fmt.Errorf("identifier %q collides with a reserved column", name)
	}
	return s, nil
}

func sanitizeAll(names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, n := range names {
		s, err := sanitizeIdentifier(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
