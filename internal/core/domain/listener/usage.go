package listener

import (
	"context"
	"fmt"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"
)

const (
	UsageName              = "usageListener"
	InterceptableUsageName = "interceptableUsageListener"
)

// Usage counts matched commands in the daily tracker.
type Usage struct {
	tracker port.Tracker
}

func NewUsage(tracker port.Tracker) *Usage {
	return &Usage{tracker: tracker}
}

func (u *Usage) Name() string {
	return UsageName
}

func (u *Usage) Description() string {
	return "Counts command usage for today."
}

func (u *Usage) Supersedes() string {
	return ""
}

func (u *Usage) Run(_ context.Context, message *domain.Message, state *domain.State) error {
	if state.CommandName == "" {
		return nil
	}

	u.tracker.AddUse(message.GuildID, state.CommandName)

	return nil
}

// InterceptableUsage additionally persists the count. It only claims a dispatch when a store is configured.
type InterceptableUsage struct {
	usage *Usage
	store port.UsageStore
}

func NewInterceptableUsage(usage *Usage, store port.UsageStore) *InterceptableUsage {
	return &InterceptableUsage{usage: usage, store: store}
}

func (i *InterceptableUsage) Name() string {
	return InterceptableUsageName
}

func (i *InterceptableUsage) Description() string {
	return "Counts command usage for today and overall."
}

func (i *InterceptableUsage) Supersedes() string {
	return UsageName
}

func (i *InterceptableUsage) Intercepts(_ *domain.Message) bool {
	return i.store != nil
}

func (i *InterceptableUsage) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	if state.CommandName == "" {
		return nil
	}

	if err := i.usage.Run(ctx, message, state); err != nil {
		return err
	}

	if err := i.store.IncrementUsage(ctx, message.GuildID, state.CommandName); err != nil {
		return fmt.Errorf("failed to persist command usage: %w", err)
	}

	return nil
}
