package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold marks a statement as slow at warn level.
const slowQueryThreshold = 200 * time.Millisecond

// slogLogger sends gorm's statement log to slog. Expected outcomes (no row, duplicate
// key, foreign key) are left to the error responder, and bound values are only rendered
// into the SQL when debug logging is on.
type slogLogger struct {
	log   *slog.Logger
	level logger.LogLevel
}

var _ logger.Interface = (*slogLogger)(nil)

// NewGormLogger returns a gorm logger writing to log at warn level. A nil log resolves
// slog.Default() on every call, so it follows logger.Setup.
func NewGormLogger(log *slog.Logger) logger.Interface {
	return &slogLogger{log: log, level: logger.Warn}
}

func (l *slogLogger) out() *slog.Logger {
	if l.log != nil {
		return l.log
	}
	return slog.Default()
}

// LogMode returns a copy at level.
func (l *slogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.out().InfoContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.out().WarnContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.out().ErrorContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

// Trace logs failed and slow statements, and every statement at gorm's info level as slog debug.
func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	log := l.out()

	switch {
	case err != nil && l.level >= logger.Error && !isExpected(err):
		sql, rows := fc()
		log.ErrorContext(ctx, "gorm statement failed",
			"error", err, "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		log.WarnContext(ctx, "gorm slow statement",
			"sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case l.level >= logger.Info && log.Enabled(ctx, slog.LevelDebug):
		sql, rows := fc()
		log.DebugContext(ctx, "gorm statement",
			"sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}

// ParamsFilter drops bound values from the rendered SQL unless debug logging is on.
func (l *slogLogger) ParamsFilter(ctx context.Context, sql string, params ...any) (string, []any) {
	if l.out().Enabled(ctx, slog.LevelDebug) {
		return sql, params
	}
	return sql, nil
}

// isExpected reports failures that adapters translate into domain errors.
func isExpected(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || IsUniqueViolation(err) || IsForeignKeyViolation(err)
}
