package notifier

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const webhookContentLimit = 2000

type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Webhook posts operational notices to a Discord webhook.
type Webhook struct {
	executor WebhookExecutor
	id       string
	token    string
	username string
	limiter  *rate.Limiter
}

func NewWebhook(executor WebhookExecutor, id, token, username string, limit rate.Limit, burst int) *Webhook {
	if burst < 1 {
		burst = 1
	}

	return &Webhook{
		executor: executor,
		id:       id,
		token:    token,
		username: username,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

func (w *Webhook) Notify(ctx context.Context, text string) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("webhook rate limit: %w", err)
	}

	if runes := []rune(text); len(runes) > webhookContentLimit {
		text = string(runes[:webhookContentLimit])
	}

	_, err := w.executor.WebhookExecute(w.id, w.token, false, &discordgo.WebhookParams{
		Content:  text,
		Username: w.username,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to execute webhook: %w", err)
	}

	return nil
}

// Noop is used when no webhook is configured.
type Noop struct{}

func (Noop) Notify(_ context.Context, text string) error {
	log.Debug().Str("notice", text).Msg("no webhook configured, dropping notice")
	return nil
}
