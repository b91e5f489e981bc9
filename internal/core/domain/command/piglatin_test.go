package command

import (
	"testing"

	"beccabot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTranslatePigLatin(t *testing.T) {
	tests := []struct {
		sentence string
		want     string
	}{
		{sentence: "hello world", want: "ellohay orldway"},
		{sentence: "apple", want: "appleway"},
		{sentence: "string", want: "ingstray"},
		{sentence: "rhythm", want: "rhythmay"},
		{sentence: "Hello, World!", want: "ellohay orldway"},
		{sentence: `"Quote's" end.`, want: "uotesqay endway"},
		{sentence: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.sentence, func(t *testing.T) {
			assert.Equal(t, tc.want, TranslatePigLatin(tc.sentence))
		})
	}
}

func TestPigLatin_Run(t *testing.T) {
	mockSender := new(MockSender)
	pig := NewPigLatin(mockSender, "piglatin", "pig")

	msg := &domain.Message{ChannelID: "channel_id", CommandArguments: []string{"hello", "world"}}

	mockSender.On("SendEmbed", mock.Anything, "channel_id", domain.Embed{
		Title:       "Igpay Atinlay",
		Description: "I have translated your sentence for you!",
		Fields: []domain.EmbedField{
			{Name: "Original Sentence", Value: "hello world"},
			{Name: "Translated Sentence", Value: "ellohay orldway"},
		},
	}).Return(nil).Once()

	require.NoError(t, pig.Run(t.Context(), msg, testState()))
	mockSender.AssertExpectations(t)
}

func TestPigLatin_RunWithoutSentence(t *testing.T) {
	mockSender := new(MockSender)
	pig := NewPigLatin(mockSender, "piglatin", "pig")

	mockSender.On("SendMessage", mock.Anything, "channel_id", missingSentence).Return(nil).Once()

	require.NoError(t, pig.Run(t.Context(), &domain.Message{ChannelID: "channel_id"}, testState()))
	mockSender.AssertExpectations(t)
	mockSender.AssertNotCalled(t, "SendEmbed", mock.Anything, mock.Anything, mock.Anything)
}
