package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"beccabot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const slowQueryThreshold = 200 * time.Millisecond

type GuildPrefix struct {
	GuildID   string `gorm:"primaryKey"`
	Prefix    string `gorm:"not null"`
	UpdatedAt time.Time
}

type MemberPoints struct {
	GuildID   string `gorm:"primaryKey"`
	UserID    string `gorm:"primaryKey"`
	Points    int    `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

type CommandCount struct {
	GuildID string `gorm:"primaryKey"`
	Command string `gorm:"primaryKey"`
	Uses    int    `gorm:"not null;default:0"`
}

// Store persists guild prefixes, member levels and command usage in SQLite.
type Store struct {
	db *gorm.DB
}

// Open creates the database file if needed and migrates the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormLogger(slowQueryThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&GuildPrefix{}, &MemberPoints{}, &CommandCount{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("path", path).Msg("database ready")

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func (s *Store) Prefixes(ctx context.Context) (map[string]string, error) {
	var rows []GuildPrefix
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	prefixes := make(map[string]string, len(rows))
	for _, row := range rows {
		prefixes[row.GuildID] = row.Prefix
	}

	return prefixes, nil
}

func (s *Store) SetPrefix(ctx context.Context, guildID, prefix string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"prefix", "updated_at"}),
	}).Create(&GuildPrefix{GuildID: guildID, Prefix: prefix}).Error
}

func (s *Store) AddPoints(ctx context.Context, guildID, userID string, points int) (domain.MemberLevel, error) {
	var row MemberPoints

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"points":     gorm.Expr("points + ?", points),
				"updated_at": time.Now().UTC(),
			}),
		}).Create(&MemberPoints{GuildID: guildID, UserID: userID, Points: points}).Error
		if err != nil {
			return err
		}

		return tx.Where("guild_id = ? AND user_id = ?", guildID, userID).First(&row).Error
	})
	if err != nil {
		return domain.MemberLevel{}, err
	}

	return domain.MemberLevel{
		GuildID: row.GuildID,
		UserID:  row.UserID,
		Points:  row.Points,
		Level:   domain.LevelForPoints(row.Points),
	}, nil
}

func (s *Store) IncrementUsage(ctx context.Context, guildID, command string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "command"}},
		DoUpdates: clause.Assignments(map[string]any{"uses": gorm.Expr("uses + 1")}),
	}).Create(&CommandCount{GuildID: guildID, Command: command, Uses: 1}).Error
}

func (s *Store) Usage(ctx context.Context, guildID string) ([]domain.CommandUsage, error) {
	var rows []CommandCount

	err := s.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("uses DESC, command ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	usage := make([]domain.CommandUsage, len(rows))
	for i, row := range rows {
		usage[i] = domain.CommandUsage{GuildID: row.GuildID, Command: row.Command, Uses: row.Uses}
	}

	return usage, nil
}
