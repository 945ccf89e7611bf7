package recipe

import (
	"pantry-manager/entities"
	"strings"

	"github.com/sahilm/fuzzy"
)

// recipeTitles implements fuzzy.Source over recipe titles.
type recipeTitles []*entities.Recipe

func (r recipeTitles) Len() int {
	return len(r)
}

func (r recipeTitles) String(i int) string {
	return strings.ToLower(r[i].Title)
}

// searchRecipes keeps recipes whose title fuzzily matches query, best match
// first. An empty query returns recipes unchanged.
func searchRecipes(recipes []*entities.Recipe, query string) []*entities.Recipe {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return recipes
	}

	matches := fuzzy.FindFrom(query, recipeTitles(recipes))
	results := make([]*entities.Recipe, len(matches))
	for i, match := range matches {
		results[i] = recipes[match.Index]
	}
	return results
}
