package assistant

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAI answers through the chat completions API. baseURL may point at
// any OpenAI-compatible server.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI responder. An empty baseURL uses the
// library default.
func NewOpenAI(apiKey, model, baseURL string, opts ...option.RequestOption) *OpenAI {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(requestTimeout),
		option.WithMaxRetries(1),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		model:  model,
	}
}

// Name implements Responder.
func (o *OpenAI) Name() string { return ProviderOpenAI }

// Reply implements Responder.
func (o *OpenAI) Reply(ctx context.Context, message string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(message),
		},
		MaxTokens: openai.Int(maxReplyTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return checkReply(resp.Choices[0].Message.Content)
}
