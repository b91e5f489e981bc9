package listener

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	LevelsName              = "levelsListener"
	InterceptableLevelsName = "interceptableLevelsListener"
)

// PointsFunc returns the points awarded for one message.
type PointsFunc func() int

// RandomPoints awards a uniformly random amount in [lowest, highest].
func RandomPoints(lowest, highest int) PointsFunc {
	if highest < lowest {
		lowest, highest = highest, lowest
	}

	return func() int {
		return lowest + rand.IntN(highest-lowest+1)
	}
}

type Levels struct {
	store  port.LevelStore
	sender port.TextSender
	points PointsFunc
}

func NewLevels(store port.LevelStore, sender port.TextSender, points PointsFunc) *Levels {
	return &Levels{store: store, sender: sender, points: points}
}

func (l *Levels) Name() string {
	return LevelsName
}

func (l *Levels) Description() string {
	return "Awards experience points for every message."
}

func (l *Levels) Supersedes() string {
	return ""
}

func (l *Levels) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	return l.award(ctx, message, state)
}

func (l *Levels) award(ctx context.Context, message *domain.Message, state *domain.State) error {
	points := l.points()
	if points <= 0 {
		return nil
	}

	member, err := l.store.AddPoints(ctx, message.GuildID, message.AuthorID, points)
	if err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}

	zerolog.Ctx(ctx).Trace().
		Str("userId", message.AuthorID).
		Int("points", member.Points).
		Int("level", member.Level).
		Msg("awarded points")

	if domain.LevelForPoints(member.Points-points) >= member.Level {
		return nil
	}

	text := fmt.Sprintf("%s Congratulations %s, you are now level %d!",
		state.Identity.Emoji.Love, message.AuthorName, member.Level)
	if err := l.sender.SendMessage(ctx, message.ChannelID, text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// InterceptableLevels scores like Levels but ignores command invocations and limits every member to one award
// per cooldown.
type InterceptableLevels struct {
	levels    *Levels
	cooldown  time.Duration
	now       func() time.Time
	mutex     sync.Mutex
	limiters  map[string]*memberLimiter
	lastSweep time.Time
}

type memberLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewInterceptableLevels(levels *Levels, cooldown time.Duration) *InterceptableLevels {
	return &InterceptableLevels{
		levels:   levels,
		cooldown: cooldown,
		now:      time.Now,
		limiters: make(map[string]*memberLimiter),
	}
}

func (i *InterceptableLevels) Name() string {
	return InterceptableLevelsName
}

func (i *InterceptableLevels) Description() string {
	return "Awards experience points for conversation, with a cooldown per member."
}

func (i *InterceptableLevels) Supersedes() string {
	return LevelsName
}

func (i *InterceptableLevels) Run(ctx context.Context, message *domain.Message, state *domain.State) error {
	if state.CommandName != "" {
		return nil
	}

	if !i.allow(message.GuildID, message.AuthorID) {
		zerolog.Ctx(ctx).Trace().Str("userId", message.AuthorID).Msg("level cooldown active")
		return nil
	}

	return i.levels.award(ctx, message, state)
}

func (i *InterceptableLevels) allow(guildID, userID string) bool {
	if i.cooldown <= 0 {
		return true
	}

	i.mutex.Lock()
	defer i.mutex.Unlock()

	now := i.now()
	i.sweep(now)

	key := guildID + ":" + userID
	member, ok := i.limiters[key]
	if !ok {
		member = &memberLimiter{limiter: rate.NewLimiter(rate.Every(i.cooldown), 1)}
		i.limiters[key] = member
	}

	member.lastSeen = now

	return member.limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than the cooldown. Their bucket is full again, so a fresh limiter behaves
// the same.
func (i *InterceptableLevels) sweep(now time.Time) {
	if now.Sub(i.lastSweep) < i.cooldown {
		return
	}

	i.lastSweep = now

	for key, member := range i.limiters {
		if now.Sub(member.lastSeen) > i.cooldown {
			delete(i.limiters, key)
		}
	}
}

func (i *InterceptableLevels) tracked() int {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	return len(i.limiters)
}
