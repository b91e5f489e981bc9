package service

import (
	"context"
	"slices"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// AdminAuthorizer allows privileged commands only for the configured bot administrators.
type AdminAuthorizer struct {
	admins []string
	sender port.TextSender
}

func NewAuthorizer(admins []string, sender port.TextSender) *AdminAuthorizer {
	return &AdminAuthorizer{
		admins: admins,
		sender: sender,
	}
}

const forbidden = "I am sorry, but only my administrators may do that."

func (a *AdminAuthorizer) IsAuthorized(ctx context.Context, message *domain.Message) bool {
	if slices.Contains(a.admins, message.AuthorID) {
		return true
	}

	log.Info().Str("userId", message.AuthorID).Str("guildId", message.GuildID).Msg(domain.ErrNotAuthorized.Error())

	err := a.sender.SendMessage(ctx, message.ChannelID, forbidden)
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}
