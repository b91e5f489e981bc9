package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"beccabot/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPrefixSetter struct {
	mock.Mock
}

func (m *MockPrefixSetter) Set(ctx context.Context, guildID, prefix string) error {
	args := m.Called(ctx, guildID, prefix)
	return args.Error(0)
}

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) IsAuthorized(ctx context.Context, message *domain.Message) bool {
	args := m.Called(ctx, message)
	return args.Bool(0)
}

func TestPrefix_Run(t *testing.T) {
	invalid := fmt.Errorf("%w: prefix contains whitespace", domain.ErrInvalidPrefix)

	tests := []struct {
		name       string
		args       []string
		authorized bool
		setErr     error
		wantSet    bool
		wantReply  string
		wantErr    bool
	}{
		{
			name:      "shows current prefix",
			wantReply: "My prefix here is `☂`.",
		},
		{
			name:       "changes prefix",
			args:       []string{"!"},
			authorized: true,
			wantSet:    true,
			wantReply:  "✅ I will now respond to `!`.",
		},
		{
			name:       "rejects invalid prefix",
			args:       []string{"!"},
			authorized: true,
			setErr:     invalid,
			wantSet:    true,
			wantReply:  "❌ " + invalid.Error(),
		},
		{
			name:       "store failure is returned",
			args:       []string{"!"},
			authorized: true,
			setErr:     errors.New("db down"),
			wantSet:    true,
			wantErr:    true,
		},
		{
			name: "unauthorized member",
			args: []string{"!"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setter := new(MockPrefixSetter)
			authorizer := new(MockAuthorizer)
			sender := new(MockSender)

			msg := &domain.Message{GuildID: "server_id", ChannelID: "channel_id", CommandArguments: tc.args}

			authorizer.On("IsAuthorized", mock.Anything, msg).Return(tc.authorized).Maybe()
			if tc.wantSet {
				setter.On("Set", mock.Anything, "server_id", "!").Return(tc.setErr).Once()
			}
			if tc.wantReply != "" {
				sender.On("SendMessage", mock.Anything, "channel_id", tc.wantReply).Return(nil).Once()
			}

			err := NewPrefix(setter, authorizer, sender, "prefix").Run(t.Context(), msg, testState())
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			setter.AssertExpectations(t)
			sender.AssertExpectations(t)
			if !tc.wantSet {
				setter.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
