package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// GetRecipe fetches one recipe by id
func (c *Client) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	var envelope recipeEnvelope
	err := c.Do(ctx, "/api/recipes/"+url.PathEscape(id), Options{
		Method: http.MethodGet,
		Route:  "/api/recipes/{id}",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return &Recipe{}, nil
	}
	return envelope.Data, nil
}

// SearchRecipes runs a keyword search; the result shape is backend-defined
func (c *Client) SearchRecipes(ctx context.Context, query string) (json.RawMessage, error) {
	return c.Call(ctx, "/api/search?q="+url.QueryEscape(query), Options{
		Method: http.MethodGet,
		Route:  "/api/search",
	})
}

// GetCategories lists recipe categories
func (c *Client) GetCategories(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, "/api/categories", Options{Method: http.MethodGet})
}
