// File: internal/store/store.go

// Package store persists audit history to PostgreSQL. Persistence is
// optional: when no database is configured the tool never touches this
// package, and a run is complete without it.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

// DBPool abstracts pgxpool.Pool to allow for mocking in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store provides a PostgreSQL implementation of audit-run persistence.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a new store instance and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// findingColumns matches the audit_findings table layout.
var findingColumns = []string{
	"run_id", "source_file", "rule_id", "severity", "message",
	"location_key", "location_line", "source", "fingerprint", "observed_at",
}

// PersistRun writes one run's canonical findings inside a single
// transaction. The findings are stored post-sanitization, so no sensitive
// value ever reaches the database.
func (s *Store) PersistRun(ctx context.Context, runID, sourceFile string, findings []schemas.Finding) error {
	if len(findings) == 0 {
		s.log.Debug("No findings to persist.", zap.String("run_id", runID))
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after commit reports ErrTxClosed; that is the success
		// path, not a failure worth logging.
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	observedAt := time.Now().UTC()
	rows := make([][]interface{}, len(findings))
	for i, f := range findings {
		var line interface{}
		if f.Location.Line > 0 {
			line = f.Location.Line
		}
		rows[i] = []interface{}{
			runID, sourceFile, f.RuleID, string(f.Severity), f.Message,
			f.Location.Key, line, string(f.Source), f.Fingerprint, observedAt,
		}
	}

	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"audit_findings"},
		findingColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy findings batch: %w", err)
	}
	if int(copied) != len(rows) {
		return fmt.Errorf("mismatch in copied findings count: expected %d, got %d", len(rows), copied)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Debug("Persisted audit findings.",
		zap.String("run_id", runID),
		zap.Int("count", len(rows)),
	)
	return nil
}
