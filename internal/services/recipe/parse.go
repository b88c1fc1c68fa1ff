package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/pantrychef/recipegen/internal/errors"
)

// ParseErrorMessage is returned to callers when the model output is not a JSON array of recipes.
const ParseErrorMessage = "GPT response was not valid JSON."

var errNotArray = errors.New("model output is not a JSON array")

// ParseRecipes decodes the raw model text as a JSON array of recipe objects.
// On failure the returned AppError carries raw verbatim.
func ParseRecipes(raw string) ([]Recipe, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, parseError(raw, err)
	}
	if items == nil {
		return nil, parseError(raw, errNotArray)
	}

	recipes := make([]Recipe, 0, len(items))
	for i, item := range items {
		if !isObject(item) {
			return nil, parseError(raw, fmt.Errorf("recipe %d is not a JSON object", i))
		}
		var r Recipe
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, parseError(raw, fmt.Errorf("recipe %d: %w", i, err))
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

func isObject(item json.RawMessage) bool {
	trimmed := bytes.TrimSpace(item)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func parseError(raw string, err error) *apperrors.AppError {
	return apperrors.NewUpstreamParseError(ParseErrorMessage, "INVALID_MODEL_JSON", raw, err)
}
