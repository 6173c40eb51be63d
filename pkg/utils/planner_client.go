package utils

import (
	"fmt"
	"strings"

	"context"

	"rutaviva/internal/models/response_models"
)

// PlannerClientInterface is the outbound generation call. Implementations
// must fail fast (no network) when no credential is configured, honor the
// supplied schema as a structured-output contract, and map failures onto
// the planner sentinel errors so the itinerary service can branch to the
// fallback planner.
type PlannerClientInterface interface {
	GenerateItinerary(
		ctx context.Context,
		systemPrompt string,
		userPayload string,
		schema *SchemaNode,
		maxOutputTokens int,
	) (*response_models.RawItinerary, error)
}

// NewPlannerClient builds the configured provider. Unlike most provider
// factories this never fails on a missing key: the itinerary service has
// a full non-AI path, so a misconfigured key degrades to fallback plans
// instead of refusing to start.
func NewPlannerClient(provider, apiKey, model string) (PlannerClientInterface, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "openai":
		return NewOpenAIPlannerClient(apiKey, model), nil
	case "gemini":
		return NewGeminiPlannerClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported planner provider: %s (use 'openai' or 'gemini')", provider)
	}
}

// ExtractJSONObject recovers the outermost JSON object from model output
// that may be wrapped in markdown fences or prose. Structured-output mode
// should make this a no-op, but cheap recovery beats a wasted retry.
func ExtractJSONObject(raw string) (string, error) {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	if start == -1 {
		return "", fmt.Errorf("%w: no object delimiter in output", ErrPlannerParse)
	}
	end := findMatchingBrace(s, start)
	if end == -1 {
		return "", fmt.Errorf("%w: unterminated object in output", ErrPlannerParse)
	}
	return s[start : end+1], nil
}

func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
