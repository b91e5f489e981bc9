package listener

import (
	"context"
	"fmt"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"
)

const HeartsName = "heartsListener"

// Hearts reacts with the love emoji to messages of a fixed set of users.
type Hearts struct {
	reactor port.Reactor
	users   map[string]struct{}
}

func NewHearts(reactor port.Reactor, users []string) *Hearts {
	set := make(map[string]struct{}, len(users))
	for _, u := range users {
		set[u] = struct{}{}
	}

	return &Hearts{reactor: reactor, users: set}
}

func (h *Hearts) Name() string {
	return HeartsName
}

func (h *Hearts) Description() string {
	return "Reacts with a heart to messages of beloved members."
}

func (h *Hearts) Supersedes() string {
	return ""
}

func (h *Hearts) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	if _, ok := h.users[message.AuthorID]; !ok {
		return nil
	}

	err := h.reactor.AddReaction(ctx, message.ChannelID, message.ID, state.Identity.Emoji.Love)
	if err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}

	return nil
}
