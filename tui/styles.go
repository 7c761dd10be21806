package tui

import (
	"fmt"
	"strings"

	"hungie/chat"
	"hungie/render"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#874BFD")).
				Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	speakerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#F25D94")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color("#FAFAFA"))

	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F25D94"))

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// bubbleWidth leaves room for borders and padding
func bubbleWidth(width int) int {
	if width <= 8 {
		return 0
	}
	return width - 4
}

// renderMessage draws one message from its fragments. selected marks one of
// its recipe cards, or none when negative.
func renderMessage(msg chat.Message, width, selected int) string {
	var blocks []string
	substitutionHeader := false
	inner := bubbleWidth(width)

	for _, f := range render.Interpret(msg) {
		switch f := f.(type) {
		case render.TextFragment:
			bubble := assistantBubbleStyle
			if f.Origin == chat.OriginUser {
				bubble = userBubbleStyle
			}
			if inner > 0 {
				bubble = bubble.Width(inner)
			}
			blocks = append(blocks, speakerStyle.Render(render.Speaker(f.Origin)), bubble.Render(f.Text))
		case render.RecipeListFragment:
			blocks = append(blocks, sectionStyle.Render("Here are some great options for you:"))
			for i, card := range f.Cards {
				blocks = append(blocks, renderCard(card, i+1, inner, i == selected))
			}
		case render.SubstitutionGroupFragment:
			if !substitutionHeader {
				blocks = append(blocks, sectionStyle.Render("🔄 Ingredient Substitutions:"))
				substitutionHeader = true
			}
			blocks = append(blocks, renderGroup(f))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderCard(card render.RecipeCard, number, width int, selected bool) string {
	title := fmt.Sprintf("%d. %s", number, card.Name)
	style := cardStyle
	if selected {
		title = "▶ " + title
		style = selectedCardStyle
	}

	lines := []string{
		cardTitleStyle.Render(title),
		mutedStyle.Render(render.CardMeta(card)),
	}
	if card.Description != "" {
		lines = append(lines, card.Description)
	}

	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderGroup(group render.SubstitutionGroupFragment) string {
	lines := []string{fmt.Sprintf("  For %s:", cardTitleStyle.Render(group.Ingredient))}
	for _, option := range group.Options {
		lines = append(lines, fmt.Sprintf("    • %s %s", option.Substitute, mutedStyle.Render("("+option.Ratio+")")))
		if option.Notes != "" {
			lines = append(lines, mutedStyle.Render("      "+option.Notes))
		}
	}
	return strings.Join(lines, "\n")
}

// renderLog draws the whole message log. selected marks a card of the
// newest recipe list, which is the one ctrl+o opens from.
func renderLog(messages []chat.Message, width, selected int) string {
	owner := -1
	if selected >= 0 {
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].Origin == chat.OriginAssistant && len(messages[i].Recipes) > 0 {
				owner = i
				break
			}
		}
	}

	blocks := make([]string, 0, len(messages))
	for i, msg := range messages {
		mark := -1
		if i == owner {
			mark = selected
		}
		blocks = append(blocks, renderMessage(msg, width, mark))
	}
	return strings.Join(blocks, "\n\n")
}
