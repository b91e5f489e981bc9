package command

import (
	"context"
	"fmt"
	"strconv"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"
)

type About struct {
	textSender port.TextSender
	names      []string
}

func NewAbout(sender port.TextSender, names ...string) *About {
	return &About{textSender: sender, names: names}
}

func (a *About) Names() []string {
	return a.names
}

func (a *About) Description() string {
	return "Provides details about the bot."
}

func (a *About) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	embed := domain.Embed{
		Title: fmt.Sprintf("Hello! I am %s %s", state.Identity.Name, state.Identity.Emoji.Love),
		Description: fmt.Sprintf("I keep an eye on this server, track levels and run commands. "+
			"Use `%shelp` to see what I can do.", state.Prefix),
		Fields: []domain.EmbedField{
			{Name: "Version", Value: state.Identity.Version},
			{Name: "Prefix", Value: state.Prefix},
			{Name: "Commands", Value: strconv.Itoa(len(state.Catalog))},
		},
	}

	if err := a.textSender.SendEmbed(ctx, message.ChannelID, embed); err != nil {
		return fmt.Errorf("failed to send about embed: %w", err)
	}

	return nil
}
