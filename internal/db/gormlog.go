package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	applog "cabinet/internal/log"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger routes gorm's statement logging through the application logger.
type GormLogger struct {
	SlowThreshold time.Duration
	level         logger.LogLevel
}

// NewGormLogger returns a logger that reports warnings, errors and statements
// slower than slow.
func NewGormLogger(slow time.Duration) *GormLogger {
	return &GormLogger{SlowThreshold: slow, level: logger.Warn}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		applog.Debug(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		applog.Warn(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		applog.Error(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error &&
		!errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey):
		sql, rows := fc()
		applog.Error(ctx, "sql statement failed", "component", "gorm", "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		applog.Warn(ctx, "slow sql statement", "component", "gorm", "elapsed", elapsed, "rows", rows, "sql", sql)
	case l.level >= logger.Info:
		sql, rows := fc()
		applog.Debug(ctx, "sql statement", "component", "gorm", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
