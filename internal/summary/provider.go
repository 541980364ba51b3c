package summary

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by New.
const (
	ProviderAuto      = "auto"
	ProviderNone      = "none"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Options is everything a provider needs, resolved once by the caller.
type Options struct {
	Provider string

	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	// Identity is optional persona text prepended to the instructions.
	Identity string
}

// New builds the configured collaborator. It returns (nil, nil) when the
// provider is "none", or "auto" with no API key set; the pipeline then
// always uses Fallback.
func New(ctx context.Context, opts Options) (Collaborator, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = ProviderAuto
	}
	if provider == ProviderAuto {
		switch {
		case opts.GeminiAPIKey != "":
			provider = ProviderGemini
		case opts.OpenAIAPIKey != "":
			provider = ProviderOpenAI
		case opts.AnthropicAPIKey != "":
			provider = ProviderAnthropic
		default:
			return nil, nil
		}
	}

	var (
		c   Collaborator
		err error
	)
	switch provider {
	case ProviderNone:
		return nil, nil
	case ProviderGemini:
		c, err = NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel, opts.Identity)
	case ProviderOpenAI:
		c, err = NewOpenAI(opts.OpenAIAPIKey, opts.OpenAIModel, opts.Identity)
	case ProviderAnthropic:
		c, err = NewAnthropic(opts.AnthropicAPIKey, opts.AnthropicModel, opts.Identity)
	default:
		return nil, fmt.Errorf("unknown summary provider %q", opts.Provider)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
