package command

import (
	"context"
	"fmt"
	"strings"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"
)

type Help struct {
	textSender port.TextSender
	names      []string
}

func NewHelp(sender port.TextSender, names ...string) *Help {
	return &Help{textSender: sender, names: names}
}

func (h *Help) Names() []string {
	return h.names
}

func (h *Help) Description() string {
	return "Lists the available commands."
}

func (h *Help) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	fields := make([]domain.EmbedField, 0, len(state.Catalog))
	for _, info := range state.Catalog {
		name := state.Prefix + info.Names[0]
		if len(info.Names) > 1 {
			name += " (" + strings.Join(info.Names[1:], ", ") + ")"
		}

		fields = append(fields, domain.EmbedField{Name: name, Value: info.Description})
	}

	embed := domain.Embed{
		Title:       "Available commands",
		Description: fmt.Sprintf("Here is everything I can do for you in this server %s", state.Identity.Emoji.Love),
		Fields:      fields,
	}

	if err := h.textSender.SendEmbed(ctx, message.ChannelID, embed); err != nil {
		return fmt.Errorf("failed to send help embed: %w", err)
	}

	return nil
}
