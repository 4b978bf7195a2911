package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/envlens-cli/api/schemas"
)

func sampleFindings() []schemas.Finding {
	return []schemas.Finding{
		{
			RuleID:      "secret.detected",
			Severity:    schemas.SeverityError,
			Message:     "Potential Stripe Live Key detected in API_KEY (API_KEY=***REDACTED***)",
			Location:    schemas.Location{Key: "API_KEY", Line: 2},
			Source:      schemas.SourceSecretScanner,
			Fingerprint: "a1b2c3d4e5f60718",
		},
		{
			RuleID:      "policy.missing_required",
			Severity:    schemas.SeverityError,
			Message:     "Required environment variable 'APP_NAME' is missing",
			Location:    schemas.Location{Key: "APP_NAME"},
			Source:      schemas.SourcePolicy,
			Fingerprint: "0011223344556677",
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("should return error if ping fails", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		pingErr := errors.New("database unavailable")
		mockPool.ExpectPing().WillReturnError(pingErr)

		_, err = New(context.Background(), mockPool, zap.NewNop())
		require.Error(t, err)
		assert.ErrorIs(t, err, pingErr, "Error from ping should be propagated")
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPersistRun(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist findings successfully without rollback errors", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		observedZapCore, observedLogs := observer.New(zapcore.ErrorLevel)
		observedLogger := zap.New(observedZapCore)

		mockPool.ExpectPing().WillReturnError(nil)
		store, err := New(context.Background(), mockPool, observedLogger)
		require.NoError(t, err)

		findings := sampleFindings()

		mockPool.ExpectBegin()
		mockPool.ExpectCopyFrom(pgx.Identifier{"audit_findings"}, findingColumns).
			WillReturnResult(int64(len(findings)))

		// Expect Commit AND the subsequent Rollback (which returns ErrTxClosed)
		mockPool.ExpectCommit()
		mockPool.ExpectRollback().WillReturnError(pgx.ErrTxClosed)

		runID := uuid.NewString()
		if err := store.PersistRun(ctx, runID, ".env", findings); err != nil {
			t.Fatalf("PersistRun failed: %v", err)
		}
		assert.NoError(t, mockPool.ExpectationsWereMet())
		assert.Empty(t, observedLogs.All(), "Expected no errors logged on successful commit")
	})

	t.Run("should skip database entirely when there are no findings", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectPing().WillReturnError(nil)
		store, err := New(context.Background(), mockPool, zap.NewNop())
		require.NoError(t, err)

		require.NoError(t, store.PersistRun(ctx, uuid.NewString(), ".env", nil))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should roll back when the copy fails", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectPing().WillReturnError(nil)
		store, err := New(context.Background(), mockPool, zap.NewNop())
		require.NoError(t, err)

		copyErr := errors.New("copy failed")
		mockPool.ExpectBegin()
		mockPool.ExpectCopyFrom(pgx.Identifier{"audit_findings"}, findingColumns).
			WillReturnError(copyErr)
		mockPool.ExpectRollback()

		err = store.PersistRun(ctx, uuid.NewString(), ".env", sampleFindings())
		require.Error(t, err)
		assert.ErrorIs(t, err, copyErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should fail on copied row count mismatch", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectPing().WillReturnError(nil)
		store, err := New(context.Background(), mockPool, zap.NewNop())
		require.NoError(t, err)

		mockPool.ExpectBegin()
		mockPool.ExpectCopyFrom(pgx.Identifier{"audit_findings"}, findingColumns).
			WillReturnResult(1)
		mockPool.ExpectRollback()

		err = store.PersistRun(ctx, uuid.NewString(), ".env", sampleFindings())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mismatch in copied findings count")
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("should propagate begin failure", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectPing().WillReturnError(nil)
		store, err := New(context.Background(), mockPool, zap.NewNop())
		require.NoError(t, err)

		beginErr := errors.New("no connection")
		mockPool.ExpectBegin().WillReturnError(beginErr)

		err = store.PersistRun(ctx, uuid.NewString(), ".env", sampleFindings())
		require.Error(t, err)
		assert.ErrorIs(t, err, beginErr)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
