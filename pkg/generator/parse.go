package generator

import (
	"encoding/json"
	"fmt"
	"pantry-manager/domain"
	"strconv"
	"strings"
)

type rawRecipe struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Ingredients  []rawIngredient `json:"ingredients"`
	Instructions json.RawMessage `json:"instructions"`
}

type rawIngredient struct {
	Name     string          `json:"name"`
	Quantity json.RawMessage `json:"quantity"`
}

// extractJSONObject trims code fences and chatter around the first JSON
// object in a completion.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start > end {
		return "", fmt.Errorf("invalid response format: %s", text)
	}
	return text[start : end+1], nil
}

func parseRecipe(completion string) (domain.GeneratedRecipe, error) {
	body, err := extractJSONObject(completion)
	if err != nil {
		return domain.GeneratedRecipe{}, err
	}

	var raw rawRecipe
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return domain.GeneratedRecipe{}, fmt.Errorf("failed to parse generated recipe: %w", err)
	}

	recipe := domain.GeneratedRecipe{
		Title:        raw.Title,
		Description:  raw.Description,
		Ingredients:  make([]domain.GeneratedIngredient, 0, len(raw.Ingredients)),
		Instructions: flattenInstructions(raw.Instructions),
	}
	for _, ingredient := range raw.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, domain.GeneratedIngredient{
			Name:     ingredient.Name,
			Quantity: parseQuantity(ingredient.Quantity),
		})
	}
	return recipe, nil
}

// flattenInstructions accepts a string or a list of steps.
func flattenInstructions(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var steps []string
	if err := json.Unmarshal(raw, &steps); err == nil {
		lines := make([]string, 0, len(steps))
		for i, step := range steps {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(step)))
		}
		return strings.Join(lines, "\n")
	}

	return string(raw)
}

// parseQuantity reads numbers and strings like "200g" or "200 grams".
func parseQuantity(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	n, _ = strconv.ParseFloat(s[:end], 64)
	return n
}
