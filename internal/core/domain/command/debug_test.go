package command

import (
	"context"
	"strings"
	"testing"

	"beccabot/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, channelID, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}

func (m *MockSender) SendEmbed(ctx context.Context, channelID string, embed domain.Embed) error {
	args := m.Called(ctx, channelID, embed)
	return args.Error(0)
}

func testState() *domain.State {
	return &domain.State{
		Identity: domain.Identity{
			Name:    "Becca",
			Version: "1.2.3",
			Emoji:   domain.Emoji{Yes: "✅", No: "❌", Think: "🤔", Love: "💜"},
		},
		Prefix: "☂",
		Catalog: []domain.CommandInfo{
			{Names: []string{"about"}, Description: "Provides details about the bot."},
			{Names: []string{"piglatin", "pig"}, Description: "Translates the given string into piglatin."},
		},
	}
}

func TestDebug_Run_SendsDebugInfo(t *testing.T) {
	mockSender := new(MockSender)
	debugCmd := NewDebug(mockSender, "debug")

	msg := &domain.Message{ID: "123", GuildID: "server_id", ChannelID: "456"}

	mockSender.
		On(
			"SendMessage",
			mock.Anything,
			"456",
			mock.MatchedBy(func(text string) bool {
				return strings.Contains(text, "version: 1.2.3") &&
					strings.Contains(text, "allocated mem:") &&
					strings.Contains(text, "goroutines running:") &&
					strings.Contains(text, "heap:") &&
					strings.Contains(text, "stack:") &&
					strings.Contains(text, "compiled with")
			}),
		).
		Return(nil)

	err := debugCmd.Run(t.Context(), msg, testState())
	require.NoError(t, err)
	mockSender.AssertExpectations(t)
}
