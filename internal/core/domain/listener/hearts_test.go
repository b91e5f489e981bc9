package listener

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReactor struct {
	mock.Mock
}

func (m *MockReactor) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	args := m.Called(ctx, channelID, messageID, emoji)
	return args.Error(0)
}

func TestHearts_Run(t *testing.T) {
	reactor := new(MockReactor)
	reactor.On("AddReaction", mock.Anything, "channel_id", "message_id", "💜").Return(nil).Once()

	hearts := NewHearts(reactor, []string{"user_id"})
	require.NoError(t, hearts.Run(t.Context(), testMessage(), testState("")))

	stranger := testMessage()
	stranger.AuthorID = "stranger"
	require.NoError(t, hearts.Run(t.Context(), stranger, testState("")))

	reactor.AssertExpectations(t)
}

func TestHearts_RunReactionFailure(t *testing.T) {
	reactor := new(MockReactor)
	reactor.On("AddReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("missing permissions"))

	err := NewHearts(reactor, []string{"user_id"}).Run(t.Context(), testMessage(), testState(""))
	require.Error(t, err)
}
