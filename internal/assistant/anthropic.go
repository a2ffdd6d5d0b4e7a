package assistant

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic answers through the Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic responder.
func NewAnthropic(apiKey, model string, opts ...option.RequestOption) *Anthropic {
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(requestTimeout),
		option.WithMaxRetries(1),
	}, opts...)

	return &Anthropic{
		client: anthropic.NewClient(reqOpts...),
		model:  model,
	}
}

// Name implements Responder.
func (a *Anthropic) Name() string { return ProviderAnthropic }

// Reply implements Responder. The first text block of the answer is used.
func (a *Anthropic) Reply(ctx context.Context, message string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxReplyTokens,
		System:    []anthropic.TextBlockParam{{Text: SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude chat: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return checkReply(block.Text)
		}
	}
	return "", ErrEmptyReply
}
