package handler

import (
	"context"
	"fmt"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type SelfIDSetter interface {
	SetSelfID(id string)
}

// Discord translates gateway events into domain messages.
type Discord struct {
	messages      chan<- *domain.Message
	prefixes      DefaultPrefixSetter
	self          SelfIDSetter
	notifier      port.Notifier
	defaultPrefix string
}

func NewDiscord(messages chan<- *domain.Message, prefixes DefaultPrefixSetter, self SelfIDSetter,
	notifier port.Notifier, defaultPrefix string) *Discord {
	return &Discord{
		messages:      messages,
		prefixes:      prefixes,
		self:          self,
		notifier:      notifier,
		defaultPrefix: defaultPrefix,
	}
}

// Register adds the event handlers to the session.
func (h *Discord) Register(s *discordgo.Session) {
	s.AddHandler(h.OnReady)
	s.AddHandler(h.OnGuildCreate)
	s.AddHandler(h.OnMessageCreate)
	s.AddHandler(h.OnConnect)
	s.AddHandler(h.OnDisconnect)
}

func (h *Discord) OnConnect(_ *discordgo.Session, _ *discordgo.Connect) {
	h.notify("connected to the discord gateway")
}

func (h *Discord) OnDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	log.Warn().Msg("disconnected from discord gateway")
	h.notify("disconnected from the discord gateway")
}

func (h *Discord) notify(text string) {
	if err := h.notifier.Notify(context.Background(), text); err != nil {
		log.Warn().Err(err).Msg("failed to send notice")
	}
}

func (h *Discord) OnReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		return
	}

	h.self.SetSelfID(r.User.ID)
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("connected to discord")
}

func (h *Discord) OnGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.ID == "" || h.defaultPrefix == "" {
		return
	}

	if seedPrefix(context.Background(), h.prefixes, g.ID, h.defaultPrefix) {
		h.notify(fmt.Sprintf("joined guild %s (%s) with %d members", g.Name, g.ID, g.MemberCount))
	}
}

func (h *Discord) OnMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil {
		return
	}

	enqueue(h.messages, discordMessage(m.Message))
}

func discordMessage(m *discordgo.Message) *domain.Message {
	message := &domain.Message{
		ID:          m.ID,
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		ChannelType: domain.GuildChannel,
		Content:     m.Content,
	}

	if m.GuildID == "" {
		message.ChannelType = domain.DirectChannel
	}

	if m.Author != nil {
		message.AuthorID = m.Author.ID
		message.AuthorName = m.Author.Username
		if m.Author.GlobalName != "" {
			message.AuthorName = m.Author.GlobalName
		}
		message.AuthorIsBot = m.Author.Bot
	}

	for _, a := range m.Attachments {
		if a == nil {
			continue
		}

		message.Attachments = append(message.Attachments, domain.Attachment{
			ID:          a.ID,
			URL:         a.URL,
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}

	return message
}
