package sender

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"beccabot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	TelegramMessageLimit = 4096
	ChatActionRepeat     = 5 * time.Second
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	SetMessageReaction(ctx context.Context, params *bot.SetMessageReactionParams) (bool, error)
}

type Telegram struct {
	bot    TelegramBot
	typing *typingLoop
}

func NewTelegram(b TelegramBot) *Telegram {
	s := &Telegram{bot: b}
	s.typing = newTypingLoop(ChatActionRepeat, s.sendTyping)

	return s
}

func (s *Telegram) SendMessage(ctx context.Context, channelID, text string) error {
	chatID, err := parseChatID(channelID)
	if err != nil {
		return err
	}

	for _, part := range chunk(text, TelegramMessageLimit) {
		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   part,
		})
		if err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}

	return nil
}

// SendEmbed renders the embed as plain text, since telegram has no embeds.
func (s *Telegram) SendEmbed(ctx context.Context, channelID string, embed domain.Embed) error {
	return s.SendMessage(ctx, channelID, renderEmbed(embed))
}

func (s *Telegram) StartTyping(ctx context.Context, channelID string) error {
	return s.typing.start(ctx, channelID)
}

func (s *Telegram) StopTyping(_ context.Context, channelID string) error {
	s.typing.stop(channelID)
	return nil
}

func (s *Telegram) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	chatID, err := parseChatID(channelID)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(messageID)
	if err != nil {
		return fmt.Errorf("invalid telegram message id %q: %w", messageID, err)
	}

	_, err = s.bot.SetMessageReaction(ctx, &bot.SetMessageReactionParams{
		ChatID:    chatID,
		MessageID: id,
		Reaction: []models.ReactionType{{
			Type:              models.ReactionTypeTypeEmoji,
			ReactionTypeEmoji: &models.ReactionTypeEmoji{Type: models.ReactionTypeTypeEmoji, Emoji: emoji},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to set telegram reaction: %w", err)
	}

	return nil
}

func (s *Telegram) sendTyping(ctx context.Context, channelID string) error {
	chatID, err := parseChatID(channelID)
	if err != nil {
		return err
	}

	_, err = s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})

	return err
}

func parseChatID(channelID string) (int64, error) {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", channelID, err)
	}

	return chatID, nil
}

func renderEmbed(embed domain.Embed) string {
	var b strings.Builder

	if embed.Title != "" {
		b.WriteString(embed.Title + "\n")
	}
	if embed.Description != "" {
		b.WriteString(embed.Description + "\n")
	}
	for _, f := range embed.Fields {
		b.WriteString("\n" + f.Name + "\n" + f.Value + "\n")
	}
	if embed.Footer != "" {
		b.WriteString("\n" + embed.Footer + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
