package command

import (
	"context"
	"fmt"
	"strings"

	"beccabot/internal/core/domain"
	"beccabot/internal/core/port"
)

type PigLatin struct {
	textSender port.TextSender
	names      []string
}

func NewPigLatin(sender port.TextSender, names ...string) *PigLatin {
	return &PigLatin{textSender: sender, names: names}
}

func (p *PigLatin) Names() []string {
	return p.names
}

func (p *PigLatin) Description() string {
	return "Translates the given string into piglatin."
}

const missingSentence = "Would you please try the command again, and provide the sentence you would like me to translate?"

func (p *PigLatin) Run(ctx context.Context, message *domain.Message, _ *domain.State) error {
	if len(message.CommandArguments) == 0 {
		if err := p.textSender.SendMessage(ctx, message.ChannelID, missingSentence); err != nil {
			return fmt.Errorf("failed to send usage hint: %w", err)
		}
		return nil
	}

	sentence := domain.JoinArgs(message.CommandArguments)

	embed := domain.Embed{
		Title:       "Igpay Atinlay",
		Description: "I have translated your sentence for you!",
		Fields: []domain.EmbedField{
			{Name: "Original Sentence", Value: sentence},
			{Name: "Translated Sentence", Value: TranslatePigLatin(sentence)},
		},
	}

	if err := p.textSender.SendEmbed(ctx, message.ChannelID, embed); err != nil {
		return fmt.Errorf("failed to send translation: %w", err)
	}

	return nil
}

const vowels = "aeiou"

// TranslatePigLatin lower-cases the sentence, drops punctuation and translates every space-separated word.
func TranslatePigLatin(sentence string) string {
	words := strings.Split(strings.ToLower(sentence), " ")

	for i, word := range words {
		word = strings.Map(func(r rune) rune {
			if strings.ContainsRune(`'".,!?`, r) {
				return -1
			}
			return r
		}, word)

		words[i] = translateWord(word)
	}

	return strings.Join(words, " ")
}

func translateWord(word string) string {
	if word == "" {
		return word
	}

	first := strings.IndexAny(word, vowels)
	switch {
	case first == 0:
		return word + "way"
	case first > 0:
		return word[first:] + word[:first] + "ay"
	default:
		return word + "ay"
	}
}
