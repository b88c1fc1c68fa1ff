package ai

import (
	"fmt"
	"strings"
)

// DefaultRecipeCount is the number of recipes requested from the model.
const DefaultRecipeCount = 5

// RecipeFields are the keys every generated recipe object must carry.
var RecipeFields = []string{
	"title",
	"description",
	"duration",
	"difficulty",
	"servings",
	"ingredients (list)",
	"steps (list)",
	"notes",
}

func recipeCount(count int) int {
	if count <= 0 {
		return DefaultRecipeCount
	}
	return count
}

// SystemPrompt is the fixed instruction demanding a bare JSON array.
func SystemPrompt(count int) string {
	return fmt.Sprintf("You are a helpful cooking assistant. Based on the ingredients, generate %d unique recipes. "+
		"Your entire response must ONLY be a valid JSON array. "+
		"Do not add any extra text or formatting — no markdown, no introductions, no explanations.",
		recipeCount(count))
}

// UserPrompt lists the ingredients and filters and restates the output contract.
func UserPrompt(ingredients, filters []string, count int) string {
	n := recipeCount(count)

	filterText := "None"
	if len(filters) > 0 {
		filterText = strings.Join(filters, ", ")
	}

	fields := strings.Join(RecipeFields[:len(RecipeFields)-1], ", ") + ", and " + RecipeFields[len(RecipeFields)-1]

	var b strings.Builder
	fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Filters: %s\n", filterText)
	fmt.Fprintf(&b, "Return exactly %d recipes using mostly these ingredients.\n", n)
	fmt.Fprintf(&b, "Each recipe must include: %s.\n", fields)
	fmt.Fprintf(&b, "Output ONLY raw JSON as a list of %d objects — no markdown or headers.", n)
	return b.String()
}

// ImagePrompt describes a food photograph of the recipe for the image model.
func ImagePrompt(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "a home-cooked dish"
	}
	return fmt.Sprintf("A realistic, high-resolution food photograph of %s plated on a white dish, "+
		"top-down view, natural soft lighting, depth of field, shot with a DSLR camera, food styling, no text", title)
}
