package sender

import (
	"context"
	"fmt"
	"time"

	"beccabot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

const (
	DiscordMessageLimit = 2000
	DiscordTypingRepeat = 8 * time.Second
	embedColor          = 0x8B5CF6
)

//go:generate mockery --name DiscordSession

type DiscordSession interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
}

type Discord struct {
	session DiscordSession
	typing  *typingLoop
}

func NewDiscord(session DiscordSession) *Discord {
	d := &Discord{session: session}
	d.typing = newTypingLoop(DiscordTypingRepeat, func(ctx context.Context, channelID string) error {
		return d.session.ChannelTyping(channelID, discordgo.WithContext(ctx))
	})

	return d
}

func (d *Discord) SendMessage(ctx context.Context, channelID, text string) error {
	for _, part := range chunk(text, DiscordMessageLimit) {
		if _, err := d.session.ChannelMessageSend(channelID, part, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to send discord message: %w", err)
		}
	}

	return nil
}

func (d *Discord) SendEmbed(ctx context.Context, channelID string, embed domain.Embed) error {
	_, err := d.session.ChannelMessageSendEmbed(channelID, toDiscordEmbed(embed), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send discord embed: %w", err)
	}

	return nil
}

func (d *Discord) StartTyping(ctx context.Context, channelID string) error {
	return d.typing.start(ctx, channelID)
}

func (d *Discord) StopTyping(_ context.Context, channelID string) error {
	d.typing.stop(channelID)
	return nil
}

func (d *Discord) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return d.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
}

func toDiscordEmbed(embed domain.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embedColor,
	}

	for _, f := range embed.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value})
	}

	if embed.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}

	return out
}
