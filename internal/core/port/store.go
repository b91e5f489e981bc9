package port

import (
	"context"

	"beccabot/internal/core/domain"
)

type PrefixStore interface {
	Prefixes(ctx context.Context) (map[string]string, error)
	SetPrefix(ctx context.Context, guildID, prefix string) error
}

type LevelStore interface {
	// AddPoints adds points to a member and returns the updated level record.
	AddPoints(ctx context.Context, guildID, userID string, points int) (domain.MemberLevel, error)
}

type UsageStore interface {
	IncrementUsage(ctx context.Context, guildID, command string) error
	Usage(ctx context.Context, guildID string) ([]domain.CommandUsage, error)
}
