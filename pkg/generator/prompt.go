package generator

import (
	"fmt"
	"pantry-manager/domain"
	"strings"
)

const systemPrompt = `You are a helpful chef assistant that generates recipes based on available ingredients.
Format your response in JSON with the following structure:
{
  "title": "Recipe Title",
  "description": "A brief 4-line description of the recipe",
  "ingredients": [
    {
      "name": "ingredient name",
      "quantity": number in grams
    }
  ],
  "instructions": "Step by step cooking instructions"
}
Do not include any explanations or text outside of the JSON object.`

func userPrompt(items []domain.GeneratePantryItem) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	return fmt.Sprintf(
		"Create a recipe using some or all of these ingredients: %s. "+
			"Make sure the description is no more than 4 lines long. "+
			"Ensure all ingredient quantities are in grams. "+
			"Format the response as specified in the system message.",
		strings.Join(names, ", "),
	)
}
