package render

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"hungie/api"
	"hungie/chat"
)

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"PT1H30M", "1 hour 30 min"},
		{"PT30M", "30 min"},
		{"PT2H", "2 hour"},
		{"", "N/A"},
		{"45 minutes", "45 minutes"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := FormatDuration(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestFormatDurationKeepsTokenOrder(t *testing.T) {
	got := FormatDuration("PT1H30M")
	hour := strings.Index(got, "hour")
	min := strings.Index(got, "min")
	if hour < 0 || min < 0 || hour > min {
		t.Errorf("Expected hour before min, got %q", got)
	}
	if !strings.HasPrefix(got, "1 hour") || !strings.HasSuffix(got, "30 min") {
		t.Errorf("Expected numbers left in place, got %q", got)
	}
}

func TestTruncateDescription(t *testing.T) {
	long := strings.Repeat("a", 250)
	got := TruncateDescription(long)
	if got != strings.Repeat("a", 100)+Ellipsis {
		t.Errorf("Expected first 100 chars plus ellipsis, got %d chars", len(got))
	}

	short := strings.Repeat("b", 50)
	if got := TruncateDescription(short); got != short {
		t.Errorf("Expected short description unchanged, got %q", got)
	}

	exact := strings.Repeat("c", 100)
	if got := TruncateDescription(exact); got != exact {
		t.Errorf("Expected 100 char description unchanged")
	}

	accents := strings.Repeat("é", 120)
	if got := TruncateDescription(accents); []rune(got)[99] != 'é' || len([]rune(got)) != 103 {
		t.Errorf("Expected truncation on characters, got %d runes", len([]rune(got)))
	}
}

func TestInterpretTextOnly(t *testing.T) {
	msg := chat.Message{Origin: chat.OriginAssistant, Text: "Hello", CreatedAt: time.Now()}

	fragments := Interpret(msg)
	if len(fragments) != 1 {
		t.Fatalf("Expected 1 fragment, got %d", len(fragments))
	}
	text, ok := fragments[0].(TextFragment)
	if !ok || text.Text != "Hello" {
		t.Errorf("Expected text fragment 'Hello', got %#v", fragments[0])
	}
}

func TestInterpretOptionalFieldsIndependently(t *testing.T) {
	recipes := []api.RecipeSummary{{ID: "1", Name: "X", TotalTime: "PT30M", Servings: "4", Description: strings.Repeat("d", 150)}}
	subs := api.SubstitutionGroups{
		{Ingredient: "egg", Options: []api.Substitution{{Substitute: "flax", Ratio: "1 tbsp + 3 tbsp water", Notes: "rest 5 min"}}},
		{Ingredient: "butter", Options: []api.Substitution{{Substitute: "oil", Ratio: "3/4"}, {Substitute: "applesauce", Ratio: "1/2"}}},
	}

	testCases := []struct {
		name     string
		msg      chat.Message
		expected []string
	}{
		{"recipes only", chat.Message{Text: "a", Recipes: recipes}, []string{"text", "recipes"}},
		{"substitutions only", chat.Message{Text: "b", Substitutions: subs}, []string{"text", "group", "group"}},
		{"both", chat.Message{Text: "c", Recipes: recipes, Substitutions: subs}, []string{"text", "recipes", "group", "group"}},
		{"empty recipes", chat.Message{Text: "d", Recipes: []api.RecipeSummary{}}, []string{"text"}},
		{"present but empty substitutions", chat.Message{Text: "e", Substitutions: api.SubstitutionGroups{}}, []string{"text"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var kinds []string
			for _, f := range Interpret(tc.msg) {
				switch f.(type) {
				case TextFragment:
					kinds = append(kinds, "text")
				case RecipeListFragment:
					kinds = append(kinds, "recipes")
				case SubstitutionGroupFragment:
					kinds = append(kinds, "group")
				}
			}
			if !reflect.DeepEqual(kinds, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, kinds)
			}
		})
	}
}

func TestInterpretCardsAndGroupOrder(t *testing.T) {
	msg := chat.Message{
		Text: "Try these",
		Recipes: []api.RecipeSummary{
			{ID: "7", Name: "Stew", TotalTime: "PT1H30M", Description: strings.Repeat("s", 250)},
			{ID: "8", Name: "Toast"},
		},
		Substitutions: api.SubstitutionGroups{
			{Ingredient: "zucchini", Options: []api.Substitution{{Substitute: "b"}, {Substitute: "a"}}},
			{Ingredient: "apple"},
		},
	}

	fragments := Interpret(msg)
	list := fragments[1].(RecipeListFragment)
	if list.Cards[0].Duration != "1 hour 30 min" {
		t.Errorf("Unexpected duration %q", list.Cards[0].Duration)
	}
	if len(list.Cards[0].Description) != 103 {
		t.Errorf("Expected truncated description, got %d chars", len(list.Cards[0].Description))
	}
	if list.Cards[1].Duration != "N/A" || list.Cards[1].Servings != "" || list.Cards[1].Description != "" {
		t.Errorf("Expected missing fields to stay empty, got %+v", list.Cards[1])
	}

	first := fragments[2].(SubstitutionGroupFragment)
	second := fragments[3].(SubstitutionGroupFragment)
	if first.Ingredient != "zucchini" || second.Ingredient != "apple" {
		t.Errorf("Expected backend order, got %s then %s", first.Ingredient, second.Ingredient)
	}
	if first.Options[0].Substitute != "b" {
		t.Error("Expected options not to be re-sorted")
	}
}

func TestInterpretIsIdempotent(t *testing.T) {
	msg := chat.Message{
		Origin:        chat.OriginAssistant,
		Text:          "Same",
		Recipes:       []api.RecipeSummary{{ID: "1", Name: "X"}},
		Substitutions: api.SubstitutionGroups{{Ingredient: "egg", Options: []api.Substitution{{Substitute: "tofu"}}}},
	}

	first := Interpret(msg)
	second := Interpret(msg)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical fragments:\n%#v\n%#v", first, second)
	}
}

func TestPlain(t *testing.T) {
	msg := chat.Message{
		Origin:        chat.OriginAssistant,
		Text:          "Try X",
		Recipes: []api.RecipeSummary{
			{ID: "1", Name: "X", TotalTime: "PT30M", Servings: "2"},
			{ID: "27", Name: "Y", TotalTime: "PT1H"},
		},
		Substitutions: api.SubstitutionGroups{{Ingredient: "egg", Options: []api.Substitution{{Substitute: "flax", Ratio: "1:1", Notes: "soak"}}}},
	}

	out := Plain(Interpret(msg))
	for _, want := range []string{"Hungie: Try X", "1. X", "id 1 • ⏱️ 30 min", "2 servings", "2. Y", "id 27 • ⏱️ 1 hour", "For egg:", "- flax (1:1)", "soak"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestCardMeta(t *testing.T) {
	testCases := []struct {
		name     string
		card     RecipeCard
		expected string
	}{
		{"full", RecipeCard{ID: "4", Duration: "20 min", Servings: "2"}, "id 4 • ⏱️ 20 min • 👥 2 servings"},
		{"no servings", RecipeCard{ID: "4", Duration: "20 min"}, "id 4 • ⏱️ 20 min"},
		{"no id", RecipeCard{Duration: "20 min"}, "⏱️ 20 min"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CardMeta(tc.card); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestTranscript(t *testing.T) {
	msgs := []chat.Message{
		{Origin: chat.OriginAssistant, Text: "hi"},
		{Origin: chat.OriginUser, Text: "pasta"},
	}
	if got := Transcript(msgs); got != "Hungie: hi\n\nYou: pasta" {
		t.Errorf("Unexpected transcript %q", got)
	}
}
