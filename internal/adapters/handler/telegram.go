package handler

import (
	"context"
	"strconv"

	"beccabot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Telegram translates bot updates into domain messages. Groups and supergroups act as guilds.
type Telegram struct {
	messages      chan<- *domain.Message
	prefixes      DefaultPrefixSetter
	defaultPrefix string
}

func NewTelegram(messages chan<- *domain.Message, prefixes DefaultPrefixSetter, defaultPrefix string) *Telegram {
	return &Telegram{messages: messages, prefixes: prefixes, defaultPrefix: defaultPrefix}
}

func (h *Telegram) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update == nil {
		return
	}

	if update.MyChatMember != nil {
		h.onMembership(ctx, update.MyChatMember)
	}

	message := update.Message
	if message == nil {
		return
	}

	log.Trace().Int64("chatId", message.Chat.ID).Int("messageId", message.ID).Msg("received update")

	enqueue(h.messages, telegramMessage(message))
}

func (h *Telegram) onMembership(ctx context.Context, member *models.ChatMemberUpdated) {
	if !isGroup(member.Chat.Type) || h.defaultPrefix == "" {
		return
	}

	switch member.NewChatMember.Type {
	case models.ChatMemberTypeMember, models.ChatMemberTypeAdministrator:
		seedPrefix(ctx, h.prefixes, strconv.FormatInt(member.Chat.ID, 10), h.defaultPrefix)
	}
}

func telegramMessage(m *models.Message) *domain.Message {
	chatID := strconv.FormatInt(m.Chat.ID, 10)

	message := &domain.Message{
		ID:          strconv.Itoa(m.ID),
		ChannelID:   chatID,
		ChannelType: domain.DirectChannel,
		Content:     m.Text,
	}

	if m.Text == "" {
		message.Content = m.Caption
	}

	if isGroup(m.Chat.Type) {
		message.GuildID = chatID
		message.ChannelType = domain.GuildChannel
	}

	if m.From != nil {
		message.AuthorID = strconv.FormatInt(m.From.ID, 10)
		message.AuthorName = userNameOrFirstName(m.From)
		message.AuthorIsBot = m.From.IsBot
	}

	return message
}

func isGroup(t models.ChatType) bool {
	return t == models.ChatTypeGroup || t == models.ChatTypeSupergroup
}

func userNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
