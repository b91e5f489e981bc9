package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"
)

type Usage struct {
	tracker port.Tracker
	store   port.UsageStore
	sender  port.TextSender
	names   []string
}

// NewUsage creates the usage command. The store is optional; without it only today's counts are reported.
func NewUsage(tracker port.Tracker, store port.UsageStore, ts port.TextSender, names ...string) *Usage {
	return &Usage{
		tracker: tracker,
		store:   store,
		sender:  ts,
		names:   names,
	}
}

func (u *Usage) Names() []string {
	return u.names
}

func (u *Usage) Description() string {
	return "Shows how often commands were used in this server."
}

const noUsageLine = "nothing yet"

func (u *Usage) Run(ctx context.Context, message *domain.Message, _ *domain.State) error {
	var b strings.Builder

	b.WriteString("Commands used today:\n")
	writeCounts(&b, u.tracker.Uses(message.GuildID))

	if u.store != nil {
		usage, err := u.store.Usage(ctx, message.GuildID)
		if err != nil {
			return fmt.Errorf("failed to read command usage: %w", err)
		}

		total := make(map[string]int, len(usage))
		for _, entry := range usage {
			total[entry.Command] = entry.Uses
		}

		b.WriteString("\nCommands used overall:\n")
		writeCounts(&b, total)
	}

	if err := u.sender.SendMessage(ctx, message.ChannelID, b.String()); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func writeCounts(b *strings.Builder, counts map[string]int) {
	if len(counts) == 0 {
		b.WriteString(noUsageLine + "\n")
		return
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		fmt.Fprintf(b, "%s: %d\n", name, counts[name])
	}
}
