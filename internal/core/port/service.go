package port

import (
	"context"

	"beccabot/internal/core/domain"
)

// Tracker counts command invocations per guild for the current day.
type Tracker interface {
	AddUse(guildID, command string)
	Uses(guildID string) map[string]int
}

type Authorizer interface {
	IsAuthorized(ctx context.Context, message *domain.Message) bool
}
