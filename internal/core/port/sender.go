package port

import (
	"context"

	"beccabot/internal/core/domain"
)

type TextSender interface {
	// SendMessage sends text to a channel, splitting it if it exceeds the transport limit.
	SendMessage(ctx context.Context, channelID, text string) error
	// SendEmbed sends a rich embed to a channel.
	SendEmbed(ctx context.Context, channelID string, embed domain.Embed) error
}

type TypingIndicator interface {
	// StartTyping shows a typing indicator on the channel until StopTyping is called as often as StartTyping.
	StartTyping(ctx context.Context, channelID string) error
	StopTyping(ctx context.Context, channelID string) error
}

type Reactor interface {
	// AddReaction reacts to a message with an emoji.
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
}

type Transport interface {
	TextSender
	TypingIndicator
	Reactor
}

type Notifier interface {
	// Notify sends an operational notice to the debug sink.
	Notify(ctx context.Context, text string) error
}
