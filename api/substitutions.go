package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// GetSubstitution asks for replacements of a single ingredient
func (c *Client) GetSubstitution(ctx context.Context, ingredient, recipeContext string) (json.RawMessage, error) {
	return c.Call(ctx, "/api/substitutions", Options{
		Method: http.MethodPost,
		Body:   SubstitutionRequest{Ingredient: ingredient, RecipeContext: recipeContext},
	})
}

// GetBulkSubstitutions asks for replacements of several ingredients at once
func (c *Client) GetBulkSubstitutions(ctx context.Context, ingredients []string, recipeContext string) (json.RawMessage, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	return c.Call(ctx, "/api/substitutions/bulk", Options{
		Method: http.MethodPost,
		Body:   BulkSubstitutionRequest{Ingredients: ingredients, RecipeContext: recipeContext},
	})
}

// BrowseSubstitutions returns the full substitution catalog
func (c *Client) BrowseSubstitutions(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, "/api/substitutions/browse", Options{Method: http.MethodGet})
}
