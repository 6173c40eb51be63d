package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"rutaviva/internal/models/response_models"
)

const plannerCallTimeout = 35 * time.Second

// OpenAIPlannerClient generates itineraries through chat completions with
// a strict json_schema response format.
type OpenAIPlannerClient struct {
	client *openai.Client
	apiKey string
	model  string
}

func NewOpenAIPlannerClient(apiKey, model string) *OpenAIPlannerClient {
	if model == "" {
		model = "gpt-4.1-mini"
	}
	return &OpenAIPlannerClient{
		client: openai.NewClient(apiKey),
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
	}
}

func (c *OpenAIPlannerClient) GenerateItinerary(
	ctx context.Context,
	systemPrompt string,
	userPayload string,
	schema *SchemaNode,
	maxOutputTokens int,
) (*response_models.RawItinerary, error) {
	if c.apiKey == "" {
		return nil, ErrPlannerMissingKey
	}

	schemaDoc, err := MarshalJSONSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal schema: %v", ErrPlannerParse, err)
	}

	ctx, cancel := context.WithTimeout(ctx, plannerCallTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPayload},
		},
		MaxTokens:   maxOutputTokens,
		Temperature: 0.2,
		// The payload carries merchant inventory; keep it out of
		// provider-side storage.
		Store: false,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   ItinerarySchemaName,
				Schema: schemaDoc,
				Strict: true,
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: status %d: %s", ErrPlannerTransport, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: %v", ErrPlannerTransport, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choice list", ErrPlannerParse)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonLength {
		return nil, fmt.Errorf("%w: output truncated at %d tokens", ErrPlannerIncomplete, maxOutputTokens)
	}

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return nil, fmt.Errorf("%w: model returned no text", ErrPlannerParse)
	}

	return parseRawItinerary(text)
}

func parseRawItinerary(text string) (*response_models.RawItinerary, error) {
	extracted, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var raw response_models.RawItinerary
	if err := json.Unmarshal([]byte(extracted), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlannerParse, err)
	}
	return &raw, nil
}
