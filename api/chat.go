package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// smartSearchEnvelope holds substitutions back so a bad shape cannot sink
// the reply text
type smartSearchEnvelope struct {
	SmartSearchResponse
	Substitutions json.RawMessage `json:"substitutions"`
}

// SmartSearch sends one user utterance with its conversational context
func (c *Client) SmartSearch(ctx context.Context, message, history string) (*SmartSearchResponse, error) {
	var env smartSearchEnvelope
	err := c.Do(ctx, "/api/smart-search", Options{
		Method: http.MethodPost,
		Body:   SmartSearchRequest{Message: message, Context: history},
	}, &env)
	if err != nil {
		return nil, err
	}

	resp := env.SmartSearchResponse
	resp.Substitutions = c.substitutions(env.Substitutions)
	return &resp, nil
}

// substitutions decodes the optional groups, dropping anything unusable
func (c *Client) substitutions(raw json.RawMessage) SubstitutionGroups {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var groups SubstitutionGroups
	if err := json.Unmarshal(raw, &groups); err != nil {
		c.logger.Warn().Err(err).Str("substitutions", truncate(string(raw), excerptLimit)).Msg("ignoring malformed substitutions")
		return nil
	}
	if groups == nil {
		c.logger.Warn().Str("substitutions", truncate(string(raw), excerptLimit)).Msg("ignoring substitutions that are not an object")
	}
	return groups
}
