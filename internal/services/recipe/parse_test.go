package recipe

import (
	"net/http"
	"testing"

	apperrors "github.com/pantrychef/recipegen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipes(t *testing.T) {
	recipes, err := ParseRecipes(`[{"title":"A"},{"title":"B","servings":3}]`)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "A", recipes[0].Title)
	assert.Equal(t, "B", recipes[1].Title)
}

func TestParseRecipes_CoercesListFields(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantIngredients StringList
		wantSteps       StringList
	}{
		{
			name:      "steps object",
			raw:       `[{"title":"Soup","steps":{"1":"Boil","2":"Season"}}]`,
			wantSteps: StringList{"Boil", "Season"},
		},
		{
			name:            "ingredients number",
			raw:             `[{"title":"Soup","ingredients":3}]`,
			wantIngredients: StringList{"3"},
		},
		{
			name:      "steps bool",
			raw:       `[{"title":"Soup","steps":true}]`,
			wantSteps: StringList{"true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, err := ParseRecipes(tt.raw)
			require.NoError(t, err)
			require.Len(t, recipes, 1)
			assert.Equal(t, "Soup", recipes[0].Title)
			assert.Equal(t, tt.wantIngredients, recipes[0].Ingredients)
			assert.Equal(t, tt.wantSteps, recipes[0].Steps)
		})
	}
}

func TestParseRecipes_Empty(t *testing.T) {
	recipes, err := ParseRecipes(`[]`)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestParseRecipes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain text", "not json"},
		{"markdown fenced", "```json\n[{\"title\":\"A\"}]\n```"},
		{"object", `{"recipes":[]}`},
		{"null", `null`},
		{"array of strings", `["pancakes"]`},
		{"truncated", `[{"title":"A"`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecipes(tt.raw)
			require.Error(t, err)

			appErr := apperrors.As(err)
			assert.Equal(t, apperrors.ErrorTypeUpstreamParse, appErr.Type)
			assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
			assert.Equal(t, ParseErrorMessage, appErr.Message)
			assert.Equal(t, tt.raw, appErr.Raw)
		})
	}
}
