package dbmetrics

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := stubDB{}
	ctx := context.Background()

	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	tx := stubTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, db))
}

func TestQueryOperation(t *testing.T) {
	assert.Equal(t, "select", queryOperation("SELECT id FROM bookings"))
	assert.Equal(t, "insert", queryOperation("\n  INSERT INTO bookings"))
	assert.Equal(t, "unknown", queryOperation("   "))
}

func TestObserve_NilMetrics(t *testing.T) {
	d := &DB{}
	assert.NotPanics(t, func() {
		d.observe("SELECT 1", time.Time{}, sql.ErrNoRows)
	})
}
