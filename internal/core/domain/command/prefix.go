package command

import (
	"context"
	"errors"
	"fmt"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"
)

type PrefixSetter interface {
	Set(ctx context.Context, guildID, prefix string) error
}

type Prefix struct {
	prefixes   PrefixSetter
	authorizer port.Authorizer
	textSender port.TextSender
	names      []string
}

func NewPrefix(prefixes PrefixSetter, authorizer port.Authorizer, sender port.TextSender,
	names ...string) *Prefix {
	return &Prefix{prefixes: prefixes, authorizer: authorizer, textSender: sender, names: names}
}

func (p *Prefix) Names() []string {
	return p.names
}

func (p *Prefix) Description() string {
	return "Shows or changes the command prefix of this server."
}

func (p *Prefix) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	if len(message.CommandArguments) == 0 {
		return p.reply(ctx, message, fmt.Sprintf("My prefix here is `%s`.", state.Prefix))
	}

	if !p.authorizer.IsAuthorized(ctx, message) {
		return nil
	}

	next := message.CommandArguments[0]

	err := p.prefixes.Set(ctx, message.GuildID, next)
	if errors.Is(err, domain.ErrInvalidPrefix) {
		return p.reply(ctx, message, fmt.Sprintf("%s %s", state.Identity.Emoji.No, err))
	}
	if err != nil {
		return fmt.Errorf("failed to set prefix: %w", err)
	}

	return p.reply(ctx, message, fmt.Sprintf("%s I will now respond to `%s`.", state.Identity.Emoji.Yes, next))
}

func (p *Prefix) reply(ctx context.Context, message *domain.Message, text string) error {
	if err := p.textSender.SendMessage(ctx, message.ChannelID, text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}
