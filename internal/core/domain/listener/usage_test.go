package listener

import (
	"context"
	"errors"
	"testing"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsageStore struct {
	increments map[string]int
	err        error
}

func (s *stubUsageStore) IncrementUsage(_ context.Context, guildID, command string) error {
	if s.err != nil {
		return s.err
	}
	if s.increments == nil {
		s.increments = make(map[string]int)
	}
	s.increments[guildID+"/"+command]++
	return nil
}

func (s *stubUsageStore) Usage(_ context.Context, _ string) ([]domain.CommandUsage, error) {
	return nil, s.err
}

func TestUsage_Run(t *testing.T) {
	tracker := service.NewUsageTracker(t.Context())
	usage := NewUsage(tracker)

	require.NoError(t, usage.Run(t.Context(), testMessage(), testState("about")))
	require.NoError(t, usage.Run(t.Context(), testMessage(), testState("")))

	assert.Equal(t, map[string]int{"about": 1}, tracker.Uses("server_id"))
}

func TestInterceptableUsage_Run(t *testing.T) {
	tracker := service.NewUsageTracker(t.Context())
	store := &stubUsageStore{}
	usage := NewInterceptableUsage(NewUsage(tracker), store)

	require.NoError(t, usage.Run(t.Context(), testMessage(), testState("piglatin")))
	require.NoError(t, usage.Run(t.Context(), testMessage(), testState("")))

	assert.Equal(t, map[string]int{"piglatin": 1}, tracker.Uses("server_id"))
	assert.Equal(t, map[string]int{"server_id/piglatin": 1}, store.increments)
}

func TestInterceptableUsage_Intercepts(t *testing.T) {
	tracker := service.NewUsageTracker(t.Context())

	assert.True(t, NewInterceptableUsage(NewUsage(tracker), &stubUsageStore{}).Intercepts(testMessage()))
	assert.False(t, NewInterceptableUsage(NewUsage(tracker), nil).Intercepts(testMessage()))
}

func TestInterceptableUsage_StoreFailure(t *testing.T) {
	tracker := service.NewUsageTracker(t.Context())
	usage := NewInterceptableUsage(NewUsage(tracker), &stubUsageStore{err: errors.New("db down")})

	require.Error(t, usage.Run(t.Context(), testMessage(), testState("about")))
	assert.Equal(t, map[string]int{"about": 1}, tracker.Uses("server_id"))
}

func TestBuiltinsRegister(t *testing.T) {
	tracker := service.NewUsageTracker(t.Context())
	levels := NewLevels(new(MockLevelStore), new(MockSender), fixedPoints(1))
	usage := NewUsage(tracker)

	r, err := NewRegistry(
		levels,
		NewInterceptableLevels(levels, 0),
		NewHearts(new(MockReactor), nil),
		usage,
		NewInterceptableUsage(usage, nil),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{InterceptableLevelsName, HeartsName, UsageName}, names(r.Applicable(testMessage())))
}
