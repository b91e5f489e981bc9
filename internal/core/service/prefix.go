package service

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const MaxPrefixLength = 10

// Prefixes resolves the command prefix of a guild. Reads are lock-free; every write swaps in a new map, so a
// dispatch always sees one consistent snapshot.
type Prefixes struct {
	current atomic.Pointer[map[string]string]
	writeMu sync.Mutex
	store   port.PrefixStore
}

// NewPrefixes creates a resolver. The store is optional; without one, prefixes only live in memory.
func NewPrefixes(store port.PrefixStore) *Prefixes {
	p := &Prefixes{store: store}
	empty := make(map[string]string)
	p.current.Store(&empty)

	return p
}

// Load replaces the in-memory prefixes with the persisted ones.
func (p *Prefixes) Load(ctx context.Context) error {
	if p.store == nil {
		return nil
	}

	prefixes, err := p.store.Prefixes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load prefixes: %w", err)
	}

	p.Replace(prefixes)
	log.Info().Int("guilds", len(prefixes)).Msg("loaded guild prefixes")

	return nil
}

func (p *Prefixes) Resolve(guildID string) (string, bool) {
	prefix, ok := (*p.current.Load())[guildID]
	return prefix, ok
}

// Replace swaps the whole prefix map.
func (p *Prefixes) Replace(prefixes map[string]string) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	next := maps.Clone(prefixes)
	if next == nil {
		next = make(map[string]string)
	}

	p.current.Store(&next)
}

// Set validates, persists and publishes the prefix of a guild.
func (p *Prefixes) Set(ctx context.Context, guildID, prefix string) error {
	_, err := p.set(ctx, guildID, prefix, true)
	return err
}

// SetDefault assigns prefix to a guild that has none yet and reports whether it did.
func (p *Prefixes) SetDefault(ctx context.Context, guildID, prefix string) (bool, error) {
	return p.set(ctx, guildID, prefix, false)
}

func (p *Prefixes) set(ctx context.Context, guildID, prefix string, overwrite bool) (bool, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return false, err
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	current := *p.current.Load()
	if _, ok := current[guildID]; ok && !overwrite {
		return false, nil
	}

	if p.store != nil {
		if err := p.store.SetPrefix(ctx, guildID, prefix); err != nil {
			return false, fmt.Errorf("failed to persist prefix: %w", err)
		}
	}

	next := maps.Clone(current)
	next[guildID] = prefix
	p.current.Store(&next)

	log.Debug().Str("guildId", guildID).Str("prefix", prefix).Msg("updated guild prefix")

	return true, nil
}

func ValidatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("%w: prefix is empty", domain.ErrInvalidPrefix)
	case utf8.RuneCountInString(prefix) > MaxPrefixLength:
		return fmt.Errorf("%w: prefix is longer than %d characters", domain.ErrInvalidPrefix, MaxPrefixLength)
	case strings.ContainsFunc(prefix, unicode.IsSpace):
		return fmt.Errorf("%w: prefix contains whitespace", domain.ErrInvalidPrefix)
	}

	return nil
}
