package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"rutaviva/internal/models/response_models"
)

// GeminiPlannerClient is the alternate provider, sharing the schema tree
// with the OpenAI client via conversion to genai.Schema.
type GeminiPlannerClient struct {
	client *genai.Client
	apiKey string
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (*GeminiPlannerClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	apiKey = strings.TrimSpace(apiKey)

	// A client is only constructed when a key exists; without one the
	// struct still satisfies the interface and fails fast per call.
	var client *genai.Client
	if apiKey != "" {
		var err error
		client, err = genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
	}

	return &GeminiPlannerClient{client: client, apiKey: apiKey, model: model}, nil
}

func (c *GeminiPlannerClient) GenerateItinerary(
	ctx context.Context,
	systemPrompt string,
	userPayload string,
	schema *SchemaNode,
	maxOutputTokens int,
) (*response_models.RawItinerary, error) {
	if c.apiKey == "" || c.client == nil {
		return nil, ErrPlannerMissingKey
	}

	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = toGenaiSchema(schema)
	m.SetTemperature(0.2)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(int32(maxOutputTokens))
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	ctx, cancel := context.WithTimeout(ctx, plannerCallTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(userPayload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlannerTransport, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no candidates", ErrPlannerParse)
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonMaxTokens {
		return nil, fmt.Errorf("%w: output truncated at %d tokens", ErrPlannerIncomplete, maxOutputTokens)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("%w: model returned no text", ErrPlannerParse)
	}

	return parseRawItinerary(text)
}

func (c *GeminiPlannerClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// toGenaiSchema converts the shared schema tree into the genai type.
// Union types (["string","null"]) become a Nullable scalar; list-length
// caps have no genai equivalent and rely on the sanitizer instead.
func toGenaiSchema(node *SchemaNode) *genai.Schema {
	if node == nil {
		return nil
	}

	out := &genai.Schema{}
	switch t := node.Type.(type) {
	case string:
		out.Type = genaiType(t)
	case []string:
		for _, alt := range t {
			if alt == "null" {
				out.Nullable = true
				continue
			}
			out.Type = genaiType(alt)
		}
	}

	if len(node.Enum) > 0 {
		out.Enum = node.Enum
	}
	if node.Items != nil {
		out.Items = toGenaiSchema(node.Items)
	}
	if len(node.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(node.Properties))
		for name, child := range node.Properties {
			out.Properties[name] = toGenaiSchema(child)
		}
		out.Required = node.Required
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
