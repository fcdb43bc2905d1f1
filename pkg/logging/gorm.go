package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter routes gorm's logger.Interface into slog.
// SQL statements are logged at debug; slow statements and errors at warn.
type GormAdapter struct {
	logger        *slog.Logger
	slowThreshold time.Duration
}

// NewGormAdapter creates an adapter. A zero slowThreshold disables slow query warnings.
func NewGormAdapter(logger *slog.Logger, slowThreshold time.Duration) *GormAdapter {
	if logger == nil {
		logger = For("database")
	}
	return &GormAdapter{logger: logger, slowThreshold: slowThreshold}
}

// LogMode returns the adapter itself; levels are owned by slog.
func (a *GormAdapter) LogMode(_ gormlogger.LogLevel) gormlogger.Interface {
	return a
}

// Info maps gorm's verbose info level to debug.
func (a *GormAdapter) Info(ctx context.Context, msg string, data ...any) {
	a.logger.DebugContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Warn(ctx context.Context, msg string, data ...any) {
	a.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Error(ctx context.Context, msg string, data ...any) {
	a.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
}

// Trace logs one executed statement.
func (a *GormAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		a.logger.WarnContext(ctx, "query error",
			"sql", sql,
			"rows_affected", rows,
			"duration_ms", elapsed.Milliseconds(),
			"error", err)
	case a.slowThreshold > 0 && elapsed > a.slowThreshold:
		a.logger.WarnContext(ctx, "slow query",
			"sql", sql,
			"rows_affected", rows,
			"duration_ms", elapsed.Milliseconds(),
			"threshold_ms", a.slowThreshold.Milliseconds())
	default:
		a.logger.DebugContext(ctx, "query",
			"sql", sql,
			"rows_affected", rows,
			"duration_ms", elapsed.Milliseconds())
	}
}
