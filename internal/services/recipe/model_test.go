package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipe_UnmarshalCoercesFields(t *testing.T) {
	raw := `{
		"title": "Egg Fried Rice",
		"description": "Quick weeknight rice",
		"duration": 20,
		"difficulty": "Easy",
		"servings": 2,
		"ingredients": ["2 eggs", {"name": "rice", "qty": "1 cup"}, 3],
		"steps": "Fry everything together",
		"notes": null,
		"cuisine": "Chinese",
		"image_url": "https://model.invented/url.png"
	}`

	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "Egg Fried Rice", r.Title)
	assert.Equal(t, "20", r.Duration)
	assert.Equal(t, Servings{Value: "2", Numeric: true}, r.Servings)
	assert.Equal(t, StringList{"2 eggs", `{"name":"rice","qty":"1 cup"}`, "3"}, r.Ingredients)
	assert.Equal(t, StringList{"Fry everything together"}, r.Steps)
	assert.Empty(t, r.Notes)
	assert.Empty(t, r.ImageURL, "image_url must never come from the model")
	assert.JSONEq(t, `"Chinese"`, string(r.Extra["cuisine"]))
	assert.NotContains(t, r.Extra, "image_url")
}

func TestRecipe_MissingFieldsDefault(t *testing.T) {
	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Toast"}`), &r))

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Toast",
		"description": "",
		"duration": "",
		"difficulty": "",
		"servings": "",
		"ingredients": [],
		"steps": [],
		"notes": "",
		"image_url": ""
	}`, string(out))
}

func TestRecipe_MarshalKeepsExtrasAndServingsShape(t *testing.T) {
	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Soup","servings":"4 bowls","calories":350,"tags":["warm"]}`), &r))
	r.ImageURL = "https://img.example.com/soup.png"

	out, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "4 bowls", decoded["servings"])
	assert.EqualValues(t, 350, decoded["calories"])
	assert.Equal(t, []any{"warm"}, decoded["tags"])
	assert.Equal(t, "https://img.example.com/soup.png", decoded["image_url"])
}

func TestServings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"number", `4`, `4`},
		{"decimal", `2.5`, `2.5`},
		{"string", `"4-6"`, `"4-6"`},
		{"null", `null`, `""`},
		{"bool", `true`, `"true"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Servings
			require.NoError(t, json.Unmarshal([]byte(tt.in), &s))
			out, err := json.Marshal(s)
			require.NoError(t, err)
			assert.JSONEq(t, tt.out, string(out))
		})
	}
}

func TestStringList_CoercesOtherShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{name: "number", input: `3`, want: StringList{"3"}},
		{name: "bool", input: `true`, want: StringList{"true"}},
		{name: "object values in key order", input: `{"2":"Simmer","1":"Boil"}`, want: StringList{"Simmer", "Boil"}},
		{name: "object with nested values", input: `{"step":1,"detail":{"temp":"hot"}}`, want: StringList{"1", `{"temp":"hot"}`}},
		{name: "empty object", input: `{}`, want: StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &l))
			assert.Equal(t, tt.want, l)
		})
	}
}
