package summary

import (
	"context"
	"fmt"

	"github.com/MikeSquared-Agency/journalviz/internal/anthropic"
)

const DefaultAnthropicModel = "claude-sonnet-4-20250514"

type completer interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
}

// Anthropic asks a Claude model through the Messages API.
type Anthropic struct {
	client   completer
	identity string
}

func NewAnthropic(apiKey, model, identity string, opts ...anthropic.Option) (*Anthropic, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrUnavailable)
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &Anthropic{client: anthropic.NewClient(apiKey, model, opts...), identity: identity}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Summarize(ctx context.Context, req Request) (Result, error) {
	raw, err := a.client.Complete(ctx, Instructions(a.identity), []anthropic.Message{
		{Role: "user", Content: UserInput(req)},
	}, maxTokens)
	if err != nil {
		return Result{}, fmt.Errorf("anthropic complete: %w", err)
	}
	return Decode(raw)
}
