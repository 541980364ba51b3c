package summary

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the slice of *genai.Models the provider needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini asks a Gemini model for a JSON summary.
type Gemini struct {
	models   contentGenerator
	model    string
	identity string
}

// NewGemini creates a Gemini collaborator for the Gemini API backend.
func NewGemini(ctx context.Context, apiKey, model, identity string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrUnavailable)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, model, identity), nil
}

func newGemini(models contentGenerator, model, identity string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{models: models, model: model, identity: identity}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Summarize(ctx context.Context, req Request) (Result, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(UserInput(req), genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(Instructions(g.identity), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.4),
		MaxOutputTokens:   maxTokens,
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return Result{}, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return Result{}, fmt.Errorf("gemini: %w: no candidates", ErrInvalidResponse)
	}
	return Decode(resp.Text())
}
