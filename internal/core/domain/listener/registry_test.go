package listener

import (
	"context"
	"testing"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockListener struct {
	name       string
	supersedes string
}

func (m *MockListener) Name() string        { return m.name }
func (m *MockListener) Description() string { return "mock" }
func (m *MockListener) Supersedes() string  { return m.supersedes }

func (m *MockListener) Run(_ context.Context, _ *domain.Message, _ *domain.State) error {
	return nil
}

type MockInterceptor struct {
	MockListener
	claim bool
}

func (m *MockInterceptor) Intercepts(_ *domain.Message) bool {
	return m.claim
}

func names(listeners []port.Listener) []string {
	out := make([]string, len(listeners))
	for i, l := range listeners {
		out[i] = l.Name()
	}
	return out
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name      string
		listeners []port.Listener
		wantErr   error
	}{
		{
			name: "valid pairs and standalone listeners",
			listeners: []port.Listener{
				&MockListener{name: "levelsListener"},
				&MockListener{name: "interceptableLevelsListener", supersedes: "levelsListener"},
				&MockListener{name: "heartsListener"},
			},
		},
		{
			name: "duplicate name",
			listeners: []port.Listener{
				&MockListener{name: "heartsListener"},
				&MockListener{name: "heartsListener"},
			},
			wantErr: domain.ErrDuplicateListener,
		},
		{
			name:      "empty name",
			listeners: []port.Listener{&MockListener{}},
			wantErr:   domain.ErrInvalidListener,
		},
		{
			name:      "supersedes itself",
			listeners: []port.Listener{&MockListener{name: "a", supersedes: "a"}},
			wantErr:   domain.ErrInvalidSupersedes,
		},
		{
			name: "two listeners supersede the same base",
			listeners: []port.Listener{
				&MockListener{name: "base"},
				&MockListener{name: "first", supersedes: "base"},
				&MockListener{name: "second", supersedes: "base"},
			},
			wantErr: domain.ErrInvalidSupersedes,
		},
		{
			name: "chained supersedes",
			listeners: []port.Listener{
				&MockListener{name: "base"},
				&MockListener{name: "middle", supersedes: "base"},
				&MockListener{name: "top", supersedes: "middle"},
			},
			wantErr: domain.ErrInvalidSupersedes,
		},
		{
			name: "superseding a missing base is allowed",
			listeners: []port.Listener{
				&MockListener{name: "interceptableUsageListener", supersedes: "usageListener"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRegistry(tc.listeners...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, r)
				return
			}

			require.NoError(t, err)
			assert.Len(t, r.ListListeners(), len(tc.listeners))
		})
	}
}

func TestApplicable(t *testing.T) {
	message := &domain.Message{GuildID: "server_id", Content: "☂about"}

	tests := []struct {
		name      string
		listeners []port.Listener
		want      []string
	}{
		{
			name: "interceptable variant replaces its base",
			listeners: []port.Listener{
				&MockListener{name: "levelsListener"},
				&MockListener{name: "interceptableLevelsListener", supersedes: "levelsListener"},
				&MockListener{name: "heartsListener"},
				&MockListener{name: "usageListener"},
				&MockListener{name: "interceptableUsageListener", supersedes: "usageListener"},
			},
			want: []string{"interceptableLevelsListener", "heartsListener", "interceptableUsageListener"},
		},
		{
			name: "base without counterpart always runs",
			listeners: []port.Listener{
				&MockListener{name: "levelsListener"},
				&MockListener{name: "heartsListener"},
			},
			want: []string{"levelsListener", "heartsListener"},
		},
		{
			name: "interceptor declining falls back to base",
			listeners: []port.Listener{
				&MockListener{name: "levelsListener"},
				&MockInterceptor{
					MockListener: MockListener{name: "interceptableLevelsListener", supersedes: "levelsListener"},
					claim:        false,
				},
			},
			want: []string{"levelsListener"},
		},
		{
			name: "interceptor claiming wins",
			listeners: []port.Listener{
				&MockListener{name: "levelsListener"},
				&MockInterceptor{
					MockListener: MockListener{name: "interceptableLevelsListener", supersedes: "levelsListener"},
					claim:        true,
				},
			},
			want: []string{"interceptableLevelsListener"},
		},
		{
			name: "interceptable with missing base runs alone",
			listeners: []port.Listener{
				&MockListener{name: "interceptableUsageListener", supersedes: "usageListener"},
			},
			want: []string{"interceptableUsageListener"},
		},
		{
			name: "declining interceptable with missing base runs nothing",
			listeners: []port.Listener{
				&MockInterceptor{
					MockListener: MockListener{name: "interceptableUsageListener", supersedes: "usageListener"},
				},
			},
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRegistry(tc.listeners...)
			require.NoError(t, err)

			got := r.Applicable(message)
			assert.Equal(t, tc.want, names(got))
			assert.Equal(t, names(got), names(r.Applicable(message)))
		})
	}
}

func TestGet(t *testing.T) {
	hearts := &MockListener{name: "heartsListener"}
	r, err := NewRegistry(hearts)
	require.NoError(t, err)

	l, ok := r.Get("heartsListener")
	require.True(t, ok)
	assert.Same(t, hearts, l)

	_, ok = r.Get("levelsListener")
	assert.False(t, ok)
}
