package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString accepts a JSON string or number and keeps its textual form.
// The backend sends ids, servings and amounts either way.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// MarshalJSON emits numbers as numbers so round trips keep the backend's shape
func (f FlexString) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte(`""`), nil
	}
	if _, err := strconv.ParseFloat(string(f), 64); err == nil {
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

// String returns the textual form
func (f FlexString) String() string {
	return string(f)
}

// RecipeSummary is the projection of a recipe used for suggestion cards
type RecipeSummary struct {
	ID          FlexString `json:"id"`
	Name        string     `json:"name"`
	TotalTime   string     `json:"total_time,omitempty"`
	Servings    FlexString `json:"servings,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Amount     FlexString `json:"amount,omitempty"`
	Unit       string     `json:"unit,omitempty"`
	Ingredient string     `json:"ingredient"`
}

// Instruction is one step; older records carry the text under "instruction"
type Instruction struct {
	Step        FlexString `json:"step,omitempty"`
	Text        string     `json:"text,omitempty"`
	Instruction string     `json:"instruction,omitempty"`
}

// Body returns whichever text field the backend filled in
func (i Instruction) Body() string {
	if i.Text != "" {
		return i.Text
	}
	return i.Instruction
}

// Nutrition holds the optional per-serving nutrition facts
type Nutrition struct {
	Calories FlexString `json:"calories,omitempty"`
	Protein  FlexString `json:"protein,omitempty"`
	Carbs    FlexString `json:"carbs,omitempty"`
	Fat      FlexString `json:"fat,omitempty"`
}

// Recipe is the full record returned by the recipe endpoint
type Recipe struct {
	ID           FlexString    `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	PrepTime     string        `json:"prep_time,omitempty"`
	CookTime     string        `json:"cook_time,omitempty"`
	TotalTime    string        `json:"total_time,omitempty"`
	Servings     FlexString    `json:"servings,omitempty"`
	Categories   []string      `json:"categories,omitempty"`
	Ingredients  []Ingredient  `json:"ingredients,omitempty"`
	Instructions []Instruction `json:"instructions,omitempty"`
	Nutrition    *Nutrition    `json:"nutrition,omitempty"`
	URL          string        `json:"url,omitempty"`
}

// Summary projects the recipe onto a suggestion card
func (r Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		TotalTime:   r.TotalTime,
		Servings:    r.Servings,
		Description: r.Description,
	}
}

// Substitution is one candidate replacement for an ingredient
type Substitution struct {
	Substitute string `json:"substitute"`
	Ratio      string `json:"ratio"`
	Notes      string `json:"notes"`
}

// SubstitutionGroup holds the candidates offered for one ingredient
type SubstitutionGroup struct {
	Ingredient string
	Options    []Substitution
}

// SubstitutionGroups decodes a JSON object of ingredient -> substitutions
// keeping the document's key order. A nil value means the field was absent,
// null or not an object; an empty non-nil value means the backend sent {}.
type SubstitutionGroups []SubstitutionGroup

// UnmarshalJSON implements json.Unmarshaler
func (g *SubstitutionGroups) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read substitutions: %w", err)
	}
	// Any other shape carries no groups
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		*g = nil
		return nil
	}

	groups := SubstitutionGroups{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read substitution key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected substitution key %v", tok)
		}

		var options []Substitution
		if err := dec.Decode(&options); err != nil {
			return fmt.Errorf("failed to decode substitutions for %s: %w", key, err)
		}
		groups = append(groups, SubstitutionGroup{Ingredient: key, Options: options})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close substitutions object: %w", err)
	}

	*g = groups
	return nil
}

// MarshalJSON writes the groups back as an object in their current order
func (g SubstitutionGroups) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(group.Ingredient)
		if err != nil {
			return nil, err
		}
		options := group.Options
		if options == nil {
			options = []Substitution{}
		}
		value, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Lookup returns the options for an ingredient
func (g SubstitutionGroups) Lookup(ingredient string) ([]Substitution, bool) {
	for _, group := range g {
		if group.Ingredient == ingredient {
			return group.Options, true
		}
	}
	return nil, false
}

// SmartSearchRequest is the body of a smart-search call
type SmartSearchRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

// SmartSearchResponse is the reply of the smart-search endpoint.
// Only ChatResponse is always expected; the rest may be missing.
type SmartSearchResponse struct {
	ChatResponse  string             `json:"chat_response"`
	Recipes       []RecipeSummary    `json:"recipes,omitempty"`
	Substitutions SubstitutionGroups `json:"substitutions,omitempty"`
	Type          string             `json:"type,omitempty"`
}

// SubstitutionRequest is the body of a single substitution lookup
type SubstitutionRequest struct {
	Ingredient    string `json:"ingredient"`
	RecipeContext string `json:"recipe_context"`
}

// BulkSubstitutionRequest is the body of a bulk substitution lookup
type BulkSubstitutionRequest struct {
	Ingredients   []string `json:"ingredients"`
	RecipeContext string   `json:"recipe_context"`
}

type recipeEnvelope struct {
	Data *Recipe `json:"data"`
}
