// Package render turns settled chat messages and recipe records into
// display fragments and text.
package render

import (
	"strings"

	"hungie/api"
	"hungie/chat"
)

// DescriptionLimit is the number of characters kept on a recipe card
const DescriptionLimit = 100

// Ellipsis marks a truncated description
const Ellipsis = "..."

// Fragment is one renderable piece of an assistant message
type Fragment interface {
	fragment()
}

// TextFragment is the narrative reply
type TextFragment struct {
	Origin chat.Origin
	Text   string
}

// RecipeCard is one suggestion, already formatted for display
type RecipeCard struct {
	ID          string
	Name        string
	Duration    string
	Servings    string // empty when unknown
	Description string // empty when unknown
}

// RecipeListFragment lists the suggested recipes
type RecipeListFragment struct {
	Cards []RecipeCard
}

// SubstitutionGroupFragment lists the candidates for one ingredient
type SubstitutionGroupFragment struct {
	Ingredient string
	Options    []api.Substitution
}

func (TextFragment) fragment()              {}
func (RecipeListFragment) fragment()        {}
func (SubstitutionGroupFragment) fragment() {}

// Interpret expands a message into fragments: the text first, then the
// recipe list if any, then one group per ingredient in backend order.
// Each optional field is checked on its own.
func Interpret(msg chat.Message) []Fragment {
	fragments := []Fragment{TextFragment{Origin: msg.Origin, Text: msg.Text}}

	if len(msg.Recipes) > 0 {
		cards := make([]RecipeCard, 0, len(msg.Recipes))
		for _, recipe := range msg.Recipes {
			cards = append(cards, Card(recipe))
		}
		fragments = append(fragments, RecipeListFragment{Cards: cards})
	}

	if msg.Substitutions != nil {
		for _, group := range msg.Substitutions {
			options := make([]api.Substitution, len(group.Options))
			copy(options, group.Options)
			fragments = append(fragments, SubstitutionGroupFragment{
				Ingredient: group.Ingredient,
				Options:    options,
			})
		}
	}

	return fragments
}

// Card formats a recipe summary for a suggestion list
func Card(recipe api.RecipeSummary) RecipeCard {
	return RecipeCard{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Duration:    FormatDuration(recipe.TotalTime),
		Servings:    recipe.Servings.String(),
		Description: TruncateDescription(recipe.Description),
	}
}

// FormatDuration turns an ISO-8601-like duration into words by replacing
// unit tokens in place: "PT" is dropped, "H" becomes " hour " and "M"
// becomes " min". Values without "PT" are returned as given.
func FormatDuration(duration string) string {
	if duration == "" {
		return "N/A"
	}
	if !strings.Contains(duration, "PT") {
		return duration
	}

	result := strings.Replace(duration, "PT", "", 1)
	result = strings.Replace(result, "H", " hour ", 1)
	result = strings.Replace(result, "M", " min", 1)
	return strings.TrimSpace(result)
}

// TruncateDescription keeps the first DescriptionLimit characters and marks
// the cut with an ellipsis. Shorter text is returned unchanged.
func TruncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= DescriptionLimit {
		return description
	}
	return string(runes[:DescriptionLimit]) + Ellipsis
}
