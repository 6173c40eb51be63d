package utils

import "encoding/json"

// SchemaNode is a minimal JSON Schema tree. We keep our own type instead
// of a library one because the itinerary contract needs union types
// (["string","null"] for optional links) and closed object shapes, and
// both planner providers consume the same tree: the OpenAI client
// marshals it verbatim into the structured-output request, the Gemini
// client converts it to genai.Schema.
type SchemaNode struct {
	Type                 any                    `json:"type"`
	Properties           map[string]*SchemaNode `json:"properties,omitempty"`
	Items                *SchemaNode            `json:"items,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	MaxItems             *int                   `json:"maxItems,omitempty"`
}

// ItinerarySchemaName is the schema name sent with structured-output
// requests.
const ItinerarySchemaName = "itinerary_schema"

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }

func stringNode() *SchemaNode {
	return &SchemaNode{Type: "string"}
}

func nullableStringNode() *SchemaNode {
	return &SchemaNode{Type: []string{"string", "null"}}
}

func stringListNode(maxItems int) *SchemaNode {
	return &SchemaNode{Type: "array", MaxItems: iptr(maxItems), Items: stringNode()}
}

// BuildItinerarySchema produces the strict structured-output contract for
// an itinerary response: closed object shapes, every field required, the
// item category constrained to the given vocabulary, and the map/social
// links nullable rather than optional so the model has to emit null
// instead of dropping the key. Structured-output compliance is only the
// first gate; the sanitizer re-checks semantics afterwards.
func BuildItinerarySchema(categories []string, maxDays, maxItemsPerDay int) *SchemaNode {
	item := &SchemaNode{
		Type:                 "object",
		AdditionalProperties: bptr(false),
		Properties: map[string]*SchemaNode{
			"listing_id":   stringNode(),
			"title":        stringNode(),
			"category":     {Type: "string", Enum: categories},
			"why":          stringNode(),
			"price_usd":    {Type: "number", Minimum: fptr(0)},
			"duration_min": {Type: "integer", Minimum: fptr(1), Maximum: fptr(600)},
			"address":      stringNode(),
			"maps_url":     nullableStringNode(),
			"tiktok_url":   nullableStringNode(),
		},
		Required: []string{
			"listing_id", "title", "category", "why", "price_usd",
			"duration_min", "address", "maps_url", "tiktok_url",
		},
	}

	day := &SchemaNode{
		Type:                 "object",
		AdditionalProperties: bptr(false),
		Properties: map[string]*SchemaNode{
			"day":       {Type: "integer", Minimum: fptr(1), Maximum: fptr(float64(maxDays))},
			"day_theme": stringNode(),
			"items":     {Type: "array", MaxItems: iptr(maxItemsPerDay), Items: item},
		},
		Required: []string{"day", "day_theme", "items"},
	}

	return &SchemaNode{
		Type:                 "object",
		AdditionalProperties: bptr(false),
		Properties: map[string]*SchemaNode{
			"route":               stringNode(),
			"days":                {Type: "integer", Minimum: fptr(1), Maximum: fptr(float64(maxDays))},
			"budget":              {Type: "number", Minimum: fptr(0)},
			"estimate_total":      {Type: "number", Minimum: fptr(0)},
			"estimate_per_person": {Type: "number", Minimum: fptr(0)},
			"party_size":          {Type: "integer", Minimum: fptr(1), Maximum: fptr(10)},
			"language":            stringNode(),
			"package_name":        stringNode(),
			"narrative":           stringNode(),
			"plan_b":              stringListNode(6),
			"sustainability":      stringListNode(6),
			"itinerary":           {Type: "array", MaxItems: iptr(maxDays), Items: day},
		},
		Required: []string{
			"route", "days", "budget", "estimate_total", "estimate_per_person",
			"party_size", "language", "package_name", "narrative", "plan_b",
			"sustainability", "itinerary",
		},
	}
}

// MarshalJSONSchema renders the tree as the raw schema document expected
// by the structured-output request field.
func MarshalJSONSchema(root *SchemaNode) (json.RawMessage, error) {
	return json.Marshal(root)
}
