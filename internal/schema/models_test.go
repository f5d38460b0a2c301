package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleJSON = `{
  "system": {
    "id": "b7aa4a53-d9b1-48cf-b7a6-ed0b182c4b89",
    "name": "Article",
    "codename": "article",
    "last_modified": "2017-11-13T12:49:51.4839353Z"
  },
  "elements": {
    "title": {"type": "text", "name": "Title"},
    "post_date": {"type": "date_time", "name": "Post date"},
    "body_copy": {"type": "rich_text", "name": "Body Copy"},
    "writing_tips": {"type": "guidelines", "name": "Writing tips"},
    "related_articles": {"type": "modular_content", "name": "Related articles", "codename": "related_articles"},
    "personas": {"type": "taxonomy", "name": "Personas"}
  }
}`

func TestContentType_UnmarshalKeepsElementOrder(t *testing.T) {
	// Test: Elements are decoded in document order with codenames taken from the keys
	var ct ContentType
	require.NoError(t, json.Unmarshal([]byte(articleJSON), &ct))

	assert.Equal(t, "article", ct.System.Codename)
	assert.Equal(t, "Article", ct.System.Name)
	assert.Equal(t, 2017, ct.System.LastModified.Year())

	codenames := make([]string, 0, len(ct.Elements))
	for _, el := range ct.Elements {
		codenames = append(codenames, el.Codename)
	}
	assert.Equal(t, []string{"title", "post_date", "body_copy", "writing_tips", "related_articles", "personas"}, codenames)
	assert.Equal(t, ElementDateTime, ct.Elements[1].Type)
	assert.Equal(t, "Body Copy", ct.Elements[2].Name)
}

func TestContentType_ValueElements(t *testing.T) {
	// Test: Guidelines are left out of the value elements
	var ct ContentType
	require.NoError(t, json.Unmarshal([]byte(articleJSON), &ct))

	values := ct.ValueElements()
	require.Len(t, values, 5)
	for _, el := range values {
		assert.NotEqual(t, ElementGuidelines, el.Type)
	}
}

func TestElements_Null(t *testing.T) {
	var ct ContentType
	require.NoError(t, json.Unmarshal([]byte(`{"system": {"codename": "empty"}, "elements": null}`), &ct))
	assert.Nil(t, ct.Elements)
}

func TestElements_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array instead of object", input: `{"elements": [{"type": "text"}]}`},
		{name: "element is not an object", input: `{"elements": {"title": 42}}`},
		{name: "truncated", input: `{"elements": {"title": {"type": "text"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ct ContentType
			assert.Error(t, json.Unmarshal([]byte(tt.input), &ct))
		})
	}
}

func TestElements_MarshalRoundTripKeepsOrder(t *testing.T) {
	ct := ContentType{
		System: System{Codename: "cafe", Name: "Cafe", LastModified: time.Date(2018, 1, 2, 3, 4, 5, 0, time.UTC)},
		Elements: Elements{
			{Codename: "street", Type: ElementText, Name: "Street"},
			{Codename: "city", Type: ElementText, Name: "City"},
			{Codename: "photo", Type: ElementAsset, Name: "Photo"},
		},
	}

	data, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"elements":{"street":`)

	var decoded ContentType
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ct, decoded)
}

func TestElementType_HasValue(t *testing.T) {
	assert.True(t, ElementText.HasValue())
	assert.True(t, ElementModularContent.HasValue())
	assert.False(t, ElementGuidelines.HasValue())
}
