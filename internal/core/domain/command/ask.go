package command

import (
	"context"
	"fmt"
	"strings"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/rs/zerolog"
)

type Ask struct {
	textGenerator port.TextGenerator
	textSender    port.TextSender
	model         string
	names         []string
}

func NewAsk(generator port.TextGenerator, sender port.TextSender, model string, names ...string) *Ask {
	return &Ask{textGenerator: generator, textSender: sender, model: model, names: names}
}

func (a *Ask) Names() []string {
	return a.names
}

func (a *Ask) Description() string {
	return "Answers a question using a language model."
}

const emptyPromptReply = "please input a prompt"

func (a *Ask) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	l := zerolog.Ctx(ctx).With().Str("handler", "ask").Logger()

	prompt := domain.JoinArgs(message.CommandArguments)
	if prompt == "" {
		return a.reply(ctx, message, emptyPromptReply)
	}

	l.Debug().Str("prompt", prompt).Str("username", message.AuthorName).Msg("handling request")

	response, err := a.textGenerator.GenerateFromPrompt(ctx, []domain.Prompt{{
		Author:   domain.User,
		Prompt:   message.AuthorName + ": " + prompt,
		Model:    a.model,
		ImageURL: firstImage(message.Attachments),
	}})
	if err != nil {
		return fmt.Errorf("failed to generate response: %w", err)
	}

	l.Debug().
		Str("model", response.Metadata.Model).
		Int("totalTokens", response.Metadata.TotalTokens).
		Msg("generated response")

	if response.Response == "" {
		return a.reply(ctx, message, state.Identity.Emoji.Think)
	}

	return a.reply(ctx, message, response.Response)
}

func (a *Ask) reply(ctx context.Context, message *domain.Message, text string) error {
	if err := a.textSender.SendMessage(ctx, message.ChannelID, text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func firstImage(attachments []domain.Attachment) string {
	for _, a := range attachments {
		if strings.HasPrefix(a.ContentType, "image/") {
			return a.URL
		}
	}

	return ""
}
