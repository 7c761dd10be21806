package render

import (
	"fmt"
	"strings"

	"hungie/chat"
)

// Speaker returns the display name for an origin
func Speaker(origin chat.Origin) string {
	if origin == chat.OriginUser {
		return "You"
	}
	return "Hungie"
}

// Plain renders fragments as terminal text without styling
func Plain(fragments []Fragment) string {
	var lines []string
	substitutionHeader := false

	for _, f := range fragments {
		switch f := f.(type) {
		case TextFragment:
			lines = append(lines, fmt.Sprintf("%s: %s", Speaker(f.Origin), f.Text))
		case RecipeListFragment:
			lines = append(lines, "", "Here are some great options for you:")
			for i, card := range f.Cards {
				lines = append(lines, fmt.Sprintf("  %d. %s", i+1, card.Name))
				lines = append(lines, "     "+CardMeta(card))
				if card.Description != "" {
					lines = append(lines, "     "+card.Description)
				}
			}
		case SubstitutionGroupFragment:
			if !substitutionHeader {
				lines = append(lines, "", "Ingredient Substitutions:")
				substitutionHeader = true
			}
			lines = append(lines, fmt.Sprintf("  For %s:", f.Ingredient))
			for _, option := range f.Options {
				lines = append(lines, fmt.Sprintf("    - %s (%s)", option.Substitute, option.Ratio))
				if option.Notes != "" {
					lines = append(lines, "      "+option.Notes)
				}
			}
		}
	}

	return strings.Join(lines, "\n")
}

// CardMeta is the id, time and servings line of a recipe card. The id is
// what "hungie recipe <id>" takes.
func CardMeta(card RecipeCard) string {
	meta := "⏱️ " + card.Duration
	if card.Servings != "" {
		meta += fmt.Sprintf(" • 👥 %s servings", card.Servings)
	}
	if card.ID != "" {
		meta = fmt.Sprintf("id %s • %s", card.ID, meta)
	}
	return meta
}

// Transcript renders every message of a log in order
func Transcript(messages []chat.Message) string {
	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		blocks = append(blocks, Plain(Interpret(msg)))
	}
	return strings.Join(blocks, "\n\n")
}
