package generator

import (
	"context"
	"errors"
	"fmt"

	"beccabot/internal/core/domain"

	"github.com/revrost/go-openrouter"
)

const DefaultModel = "openai/gpt-4.1-mini"

type OpenRouterClient interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouter struct {
	client       OpenRouterClient
	systemPrompt string
	defaultModel string
}

func NewOpenRouter(apiKey, systemPrompt, defaultModel string) *OpenRouter {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}

	return &OpenRouter{
		systemPrompt: systemPrompt,
		defaultModel: defaultModel,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("beccabot"),
		),
	}
}

func (c *OpenRouter) GenerateFromPrompt(
	ctx context.Context, prompts []domain.Prompt) (domain.ModelResponse, error) {
	if len(prompts) == 0 {
		return domain.ModelResponse{}, domain.ErrEmptyPrompt
	}

	messages := make([]openrouter.ChatCompletionMessage, len(prompts)+1)

	messages[0] = openrouter.ChatCompletionMessage{
		Role: openrouter.ChatMessageRoleSystem,
		Content: openrouter.Content{
			Text: c.systemPrompt,
		},
	}

	for i, prompt := range prompts {
		switch prompt.Author {
		case domain.System:
			messages[i+1] = openrouter.ChatCompletionMessage{
				Role: openrouter.ChatMessageRoleAssistant,
				Content: openrouter.Content{
					Text: prompt.Prompt,
				},
			}
		default:
			messages[i+1] = createUserMessage(prompt)
		}
	}

	model := prompts[len(prompts)-1].Model
	if model == "" {
		model = c.defaultModel
	}

	resp, err := c.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Messages: messages,
		Model:    model,
	})
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return domain.ModelResponse{}, errors.New("openrouter returned no choices")
	}

	response := domain.ModelResponse{
		Response: resp.Choices[0].Message.Content.Text,
		Metadata: domain.ResponseMetadata{
			Model: resp.Model,
		},
	}

	// usage is omitted by some providers
	if resp.Usage != nil {
		response.Metadata.CompletionTokens = resp.Usage.CompletionTokens
		response.Metadata.TotalTokens = resp.Usage.TotalTokens
	}

	return response, nil
}

func createUserMessage(prompt domain.Prompt) openrouter.ChatCompletionMessage {
	if prompt.ImageURL != "" {
		return openrouter.ChatCompletionMessage{
			Role: openrouter.ChatMessageRoleUser,
			Content: openrouter.Content{Multi: []openrouter.ChatMessagePart{
				{
					Type:     openrouter.ChatMessagePartTypeImageURL,
					ImageURL: &openrouter.ChatMessageImageURL{URL: prompt.ImageURL},
				},
				{
					Type: openrouter.ChatMessagePartTypeText,
					Text: prompt.Prompt,
				},
			},
			},
		}
	}

	return openrouter.ChatCompletionMessage{
		Role: openrouter.ChatMessageRoleUser,
		Content: openrouter.Content{
			Text: prompt.Prompt,
		},
	}
}
