package service

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// UsageTracker counts command invocations per guild for the current day.
type UsageTracker struct {
	guilds map[string]map[string]int
	mutex  sync.Mutex
}

// NewUsageTracker creates a tracker whose counters reset every midnight until ctx ends.
func NewUsageTracker(ctx context.Context) *UsageTracker {
	ut := &UsageTracker{
		guilds: make(map[string]map[string]int),
	}

	go ut.ResetDaily(ctx)

	return ut
}

func (t *UsageTracker) AddUse(guildID, command string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.guilds[guildID] == nil {
		t.guilds[guildID] = make(map[string]int)
	}
	t.guilds[guildID][command]++
}

func (t *UsageTracker) Uses(guildID string) map[string]int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	uses := maps.Clone(t.guilds[guildID])
	if uses == nil {
		uses = make(map[string]int)
	}

	return uses
}

func (t *UsageTracker) reset() {
	t.mutex.Lock()
	t.guilds = make(map[string]map[string]int)
	t.mutex.Unlock()
}

func (t *UsageTracker) ResetDaily(ctx context.Context) {
	reset := getNextResetTime()

	for {
		log.Debug().Time("reset", reset).Msg("running usage reset timer")
		select {
		case <-time.After(time.Until(reset)):
			log.Debug().Msg("resetting daily usage")
			t.reset()
			time.Sleep(time.Second)
			reset = getNextResetTime()
		case <-ctx.Done():
			log.Debug().Msg("stopping daily usage reset")
			return
		}
	}
}

func getNextResetTime() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
