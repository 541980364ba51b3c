package summary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const DefaultOpenAIModel = "gpt-5-mini"

// responseSchema is the strict structured-output schema for response.
var responseSchema = generateSchema[response]()

// OpenAI asks an OpenAI model through the Responses API with a strict JSON
// schema.
type OpenAI struct {
	client   openai.Client
	model    string
	identity string
}

// NewOpenAI creates an OpenAI collaborator. Extra request options are
// appended after the API key.
func NewOpenAI(apiKey, model, identity string, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrUnavailable)
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAI{
		client:   openai.NewClient(opts...),
		model:    model,
		identity: identity,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Summarize(ctx context.Context, req Request) (Result, error) {
	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(maxTokens),
		Instructions:    openai.String(Instructions(o.identity)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(UserInput(req), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "JournalSummary",
					Schema:      responseSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Journal interpretation JSON"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("openai responses: %w", err)
	}
	return Decode(resp.OutputText())
}

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	delete(m, "$schema")
	delete(m, "$id")

	// Strict mode wants every property listed as required.
	if props, ok := m["properties"].(map[string]any); ok {
		required := make([]string, 0, len(props))
		for name := range props {
			required = append(required, name)
		}
		m["required"] = required
	}
	m["additionalProperties"] = false
	return m
}
