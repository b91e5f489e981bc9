package handler

import (
	"context"

	"beccabot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// DefaultPrefixSetter assigns a prefix to guilds that have none yet.
type DefaultPrefixSetter interface {
	SetDefault(ctx context.Context, guildID, prefix string) (bool, error)
}

// enqueue hands the message to the dispatcher without blocking the gateway. Messages are dropped when the queue
// is full.
func enqueue(messages chan<- *domain.Message, message *domain.Message) {
	select {
	case messages <- message:
	default:
		log.Warn().
			Str("guildId", message.GuildID).
			Str("channelId", message.ChannelID).
			Str("messageId", message.ID).
			Msg("message queue full, dropping message")
	}
}

// seedPrefix reports whether the guild was new and received the default prefix.
func seedPrefix(ctx context.Context, prefixes DefaultPrefixSetter, guildID, prefix string) bool {
	set, err := prefixes.SetDefault(ctx, guildID, prefix)
	if err != nil {
		log.Error().Err(err).Str("guildId", guildID).Msg("failed to set default prefix")
		return false
	}

	if set {
		log.Info().Str("guildId", guildID).Str("prefix", prefix).Msg("joined guild, default prefix set")
	}

	return set
}
