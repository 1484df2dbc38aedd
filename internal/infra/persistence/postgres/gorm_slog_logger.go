package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"canteen/config"
	deliverycontext "canteen/internal/delivery/context"
	"canteen/internal/errors"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// statementLogger routes gorm output onto slog, preferring the request-scoped
// logger so statements share the request id of the call that issued them.
type statementLogger struct {
	base  *slog.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func newGormSlogLogger(base *slog.Logger, cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = gormlogger.Info
	}

	return &statementLogger{base: base, level: level, slow: slowQueryThreshold}
}

func (l *statementLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level

	return &clone
}

func (l *statementLogger) logger(ctx context.Context) *slog.Logger {
	if l.base == nil {
		return nil
	}

	return deliverycontext.LoggerFrom(ctx, l.base)
}

func (l *statementLogger) printf(ctx context.Context, threshold gormlogger.LogLevel, level slog.Level, msg string, args []any) {
	logger := l.logger(ctx)
	if logger == nil || l.level < threshold {
		return
	}
	logger.Log(ctx, level, fmt.Sprintf(msg, args...), slog.String("component", "gorm"))
}

func (l *statementLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Info, slog.LevelInfo, msg, args)
}

func (l *statementLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Warn, slog.LevelWarn, msg, args)
}

func (l *statementLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Error, slog.LevelError, msg, args)
}

// Trace logs failed statements, slow statements and, in debug mode, every
// statement. Missing rows and unique violations are expected outcomes here
// (lookups by id and order number retries) and stay at debug level.
func (l *statementLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	logger := l.logger(ctx)
	if logger == nil || l.level == gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	level, msg := slog.LevelDebug, "SQL statement"
	switch {
	case err != nil && l.level >= gormlogger.Error && !expectedStoreError(err):
		level, msg = slog.LevelError, "SQL statement failed"
	case err == nil && l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		level, msg = slog.LevelWarn, "SQL statement slow"
	case l.level >= gormlogger.Info:
		level = slog.LevelInfo
	}
	if !logger.Enabled(ctx, level) {
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("component", "gorm"),
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	logger.LogAttrs(ctx, level, msg, attrs...)
}

func expectedStoreError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || isUniqueConstraintViolation(err)
}
