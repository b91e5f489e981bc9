package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger writes gorm's query log through zerolog.
type gormLogger struct {
	logger        zerolog.Logger
	slowThreshold time.Duration
}

func newGormLogger(slowThreshold time.Duration) gormLogger {
	return gormLogger{
		logger:        log.With().Str("logger", "gorm").Logger(),
		slowThreshold: slowThreshold,
	}
}

func (g gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	switch level {
	case logger.Silent:
		g.logger = g.logger.Level(zerolog.Disabled)
	case logger.Error:
		g.logger = g.logger.Level(zerolog.ErrorLevel)
	case logger.Warn:
		g.logger = g.logger.Level(zerolog.WarnLevel)
	}

	return g
}

func (g gormLogger) Info(_ context.Context, s string, i ...any) {
	g.logger.Info().Msg(fmt.Sprintf(s, i...))
}

func (g gormLogger) Warn(_ context.Context, s string, i ...any) {
	g.logger.Warn().Msg(fmt.Sprintf(s, i...))
}

func (g gormLogger) Error(_ context.Context, s string, i ...any) {
	g.logger.Error().Msg(fmt.Sprintf(s, i...))
}

func (g gormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		g.logger.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("sql failed")
	case g.slowThreshold != 0 && elapsed > g.slowThreshold:
		g.logger.Warn().Dur("elapsed", elapsed).Dur("threshold", g.slowThreshold).Int64("rows", rows).
			Str("sql", sql).Msg("slow sql")
	default:
		g.logger.Trace().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("sql completed")
	}
}
