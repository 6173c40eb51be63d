package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildItinerarySchemaIsClosedAndComplete(t *testing.T) {
	categories := []string{"comida", "historico", "parque", "artesania"}
	root := BuildItinerarySchema(categories, 7, 4)

	require.NotNil(t, root.AdditionalProperties)
	assert.False(t, *root.AdditionalProperties)
	assert.ElementsMatch(t, root.Required, keys(root.Properties),
		"every top-level property must be required")

	day := root.Properties["itinerary"].Items
	require.NotNil(t, day)
	assert.ElementsMatch(t, day.Required, keys(day.Properties))

	item := day.Properties["items"].Items
	require.NotNil(t, item)
	assert.ElementsMatch(t, item.Required, keys(item.Properties))
	assert.Equal(t, categories, item.Properties["category"].Enum)
}

func TestBuildItinerarySchemaBounds(t *testing.T) {
	root := BuildItinerarySchema([]string{"comida"}, 7, 3)

	require.NotNil(t, root.Properties["itinerary"].MaxItems)
	assert.Equal(t, 7, *root.Properties["itinerary"].MaxItems)

	day := root.Properties["itinerary"].Items
	require.NotNil(t, day.Properties["items"].MaxItems)
	assert.Equal(t, 3, *day.Properties["items"].MaxItems)

	item := day.Properties["items"].Items
	assert.Equal(t, 1.0, *item.Properties["duration_min"].Minimum)
	assert.Equal(t, 600.0, *item.Properties["duration_min"].Maximum)
	assert.Equal(t, 0.0, *item.Properties["price_usd"].Minimum)

	assert.Equal(t, 6, *root.Properties["plan_b"].MaxItems)
	assert.Equal(t, 6, *root.Properties["sustainability"].MaxItems)
}

// Optional links must serialize as a type union so the model has to emit
// an explicit null rather than dropping the key.
func TestSchemaNullableLinksMarshal(t *testing.T) {
	root := BuildItinerarySchema([]string{"comida"}, 7, 4)
	doc, err := MarshalJSONSchema(root)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(doc, &decoded))

	item := decoded["properties"].(map[string]any)["itinerary"].(map[string]any)["items"].(map[string]any)["properties"].(map[string]any)["items"].(map[string]any)["items"].(map[string]any)
	maps := item["properties"].(map[string]any)["maps_url"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, maps["type"])
}

func keys(m map[string]*SchemaNode) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
