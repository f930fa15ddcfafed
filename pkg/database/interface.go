package database

import (
	"context"
	"database/sql"
	"time"

	"ihome-rentals/pkg/metrics"
)

// Querier is the subset of *sql.DB and *sql.Tx used by the repositories.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Observe records the duration of a store operation and counts it as failed when err is non-nil.
func Observe(operation, table string, start time.Time, err error) {
	metrics.MySQLOperationDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MySQLErrorsTotal.WithLabelValues(operation, table).Inc()
	}
}
