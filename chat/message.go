package chat

import (
	"time"

	"hungie/api"
)

// Origin says who produced a turn
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// ResponseKind tags which backend capability produced an assistant turn
type ResponseKind string

// KindRecipeSearch is used when the backend does not say otherwise
const KindRecipeSearch ResponseKind = "recipe_search"

// Greeting seeds every new conversation
const Greeting = "Hello there! 👋 I'm Hungie, your personal chef assistant! What are you craving today? Tell me about your situation - are you looking for something quick, budget-friendly, healthy, or just want to try something new? Yes, Chef! 🍴"

// Fallback replaces the reply when the backend call fails
const Fallback = "Oops! Something went wrong, but I'm still here to help! 😅 What are you looking to cook today? Yes, Chef! 🍴"

// QuickPrompts are offered while the conversation only holds the greeting
var QuickPrompts = []string{
	"I need something quick for dinner",
	"What can I make with chicken?",
	"I'm on a budget, help me out",
	"Something healthy and delicious",
	"Kid-friendly recipes please",
	"I want to try something new",
}

// Message represents one dialogue turn
type Message struct {
	Origin        Origin                 `json:"origin"`
	Text          string                 `json:"text"`
	CreatedAt     time.Time              `json:"created_at"`
	Recipes       []api.RecipeSummary    `json:"recipes,omitempty"`
	Substitutions api.SubstitutionGroups `json:"substitutions,omitempty"` // nil when absent
	Kind          ResponseKind           `json:"kind,omitempty"`
}

// HasRecipes reports whether the turn suggests any recipe
func (m Message) HasRecipes() bool {
	return len(m.Recipes) > 0
}

// HasSubstitutions reports whether the backend sent a substitution map
func (m Message) HasSubstitutions() bool {
	return m.Substitutions != nil
}

func newUserMessage(text string, now time.Time) Message {
	return Message{
		Origin:    OriginUser,
		Text:      text,
		CreatedAt: now,
		Kind:      KindRecipeSearch,
	}
}

func newAssistantMessage(text string, now time.Time) Message {
	return Message{
		Origin:    OriginAssistant,
		Text:      text,
		CreatedAt: now,
		Recipes:   []api.RecipeSummary{},
		Kind:      KindRecipeSearch,
	}
}

// replyMessage builds the assistant turn for a successful smart search
func replyMessage(resp *api.SmartSearchResponse, now time.Time) Message {
	msg := newAssistantMessage(resp.ChatResponse, now)
	if resp.Recipes != nil {
		msg.Recipes = resp.Recipes
	}
	msg.Substitutions = resp.Substitutions
	if resp.Type != "" {
		msg.Kind = ResponseKind(resp.Type)
	}
	return msg
}
