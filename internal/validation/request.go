package validation

import (
	"strings"

	apperrors "github.com/pantrychef/recipegen/internal/errors"
	"github.com/pantrychef/recipegen/internal/services/recipe"
)

// NoIngredientsMessage is returned when a request carries no usable ingredient.
const NoIngredientsMessage = "No ingredients provided."

// ValidateGenerateRequest cleans the request in place and rejects it when no
// ingredient is left.
func ValidateGenerateRequest(req *recipe.Request) error {
	if req == nil {
		return errNoIngredients()
	}

	req.Ingredients = cleanList(req.Ingredients)
	req.Filters = cleanList(req.Filters)

	if len(req.Ingredients) == 0 {
		return errNoIngredients()
	}
	return nil
}

func errNoIngredients() error {
	return apperrors.NewValidationError(NoIngredientsMessage, "MISSING_INGREDIENTS",
		"Send a JSON body with a non-empty \"ingredients\" list.")
}

// cleanList trims each entry and drops blanks.
func cleanList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeRecipe trims text fields and replaces missing lists with empty ones
// so every recipe in a response has the same shape.
func NormalizeRecipe(r *recipe.Recipe) {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Duration = strings.TrimSpace(r.Duration)
	r.Difficulty = strings.TrimSpace(r.Difficulty)
	r.Notes = strings.TrimSpace(r.Notes)

	if r.Ingredients == nil {
		r.Ingredients = recipe.StringList{}
	}
	if r.Steps == nil {
		r.Steps = recipe.StringList{}
	}
}

// NormalizeRecipes applies NormalizeRecipe to every element.
func NormalizeRecipes(recipes []recipe.Recipe) []recipe.Recipe {
	for i := range recipes {
		NormalizeRecipe(&recipes[i])
	}
	return recipes
}
