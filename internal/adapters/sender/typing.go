package sender

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type typingEntry struct {
	count  int
	cancel context.CancelFunc
}

// typingLoop keeps a typing indicator alive per channel. The indicator is refreshed every interval until every
// start has been matched by a stop.
type typingLoop struct {
	interval time.Duration
	send     func(ctx context.Context, channelID string) error

	mutex  sync.Mutex
	active map[string]*typingEntry
}

func newTypingLoop(interval time.Duration, send func(ctx context.Context, channelID string) error) *typingLoop {
	return &typingLoop{
		interval: interval,
		send:     send,
		active:   make(map[string]*typingEntry),
	}
}

// start reserves the channel under the lock and sends the first indicator outside of it, so a slow request
// never holds up other channels.
func (t *typingLoop) start(ctx context.Context, channelID string) error {
	t.mutex.Lock()
	if entry, ok := t.active[channelID]; ok {
		entry.count++
		t.mutex.Unlock()
		return nil
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	entry := &typingEntry{count: 1, cancel: cancel}
	t.active[channelID] = entry
	t.mutex.Unlock()

	if err := t.send(ctx, channelID); err != nil {
		t.rollback(loopCtx, channelID, entry)
		return err
	}

	go t.refresh(loopCtx, channelID)

	return nil
}

// rollback releases the reservation of a failed start. Callers that joined meanwhile keep the refresh loop.
func (t *typingLoop) rollback(loopCtx context.Context, channelID string, entry *typingEntry) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.active[channelID] != entry {
		return
	}

	entry.count--
	if entry.count > 0 {
		go t.refresh(loopCtx, channelID)
		return
	}

	entry.cancel()
	delete(t.active, channelID)
}

func (t *typingLoop) stop(channelID string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	entry, ok := t.active[channelID]
	if !ok {
		return
	}

	entry.count--
	if entry.count > 0 {
		return
	}

	entry.cancel()
	delete(t.active, channelID)
}

func (t *typingLoop) refresh(ctx context.Context, channelID string) {
	log.Debug().Str("channelId", channelID).Msg("starting typing routine")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("channelId", channelID).Msg("done, stopping typing routine")
			return
		case <-ticker.C:
			if err := t.send(ctx, channelID); err != nil {
				log.Warn().Err(err).Str("channelId", channelID).Msg("error sending typing indicator")
				return
			}
		}
	}
}

func (t *typingLoop) running(channelID string) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	_, ok := t.active[channelID]
	return ok
}
