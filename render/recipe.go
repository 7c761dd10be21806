package render

import (
	"fmt"
	"hash/fnv"
	"strings"

	"hungie/api"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotFound is shown when a recipe cannot be fetched
const NotFound = "Recipe not found. It might have been eaten! 🍽️"

var chefComments = []string{
	"This one's a real crowd-pleaser! 🎉",
	"Get ready for some serious flavor! 🔥",
	"Your kitchen is about to smell AMAZING! 👃",
	"This recipe never fails to impress! ⭐",
	"Prepare for compliments galore! 😍",
	"Warning: May cause uncontrollable drooling! 🤤",
}

// ChefComment picks a comment for a recipe; the same name always gets the
// same comment.
func ChefComment(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return chefComments[h.Sum32()%uint32(len(chefComments))]
}

// Category turns a slug like "main-dish" into "Main Dish"
func Category(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// RecipeMarkdown renders the recipe detail page as markdown
func RecipeMarkdown(recipe *api.Recipe) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", recipe.Name)
	fmt.Fprintf(&b, "🍴 *%s*\n\n", ChefComment(recipe.Name))

	if recipe.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", recipe.Description)
	}

	servings := recipe.Servings.String()
	if servings == "" {
		servings = "N/A"
	}
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| ⏱️ Prep Time | %s |\n", FormatDuration(recipe.PrepTime))
	fmt.Fprintf(&b, "| 🔥 Cook Time | %s |\n", FormatDuration(recipe.CookTime))
	fmt.Fprintf(&b, "| ⏰ Total Time | %s |\n", FormatDuration(recipe.TotalTime))
	fmt.Fprintf(&b, "| 👥 Servings | %s |\n\n", servings)

	if len(recipe.Categories) > 0 {
		tags := make([]string, 0, len(recipe.Categories))
		for _, c := range recipe.Categories {
			tags = append(tags, "`"+Category(c)+"`")
		}
		fmt.Fprintf(&b, "**Categories:** %s\n\n", strings.Join(tags, " "))
	}

	b.WriteString("## 🥗 Ingredients\n\n")
	if len(recipe.Ingredients) == 0 {
		b.WriteString("No ingredients listed - but I'm sure it's delicious! 😅\n\n")
	} else {
		for _, ing := range recipe.Ingredients {
			amount := strings.TrimSpace(fmt.Sprintf("%s %s", ing.Amount, ing.Unit))
			if amount == "" {
				fmt.Fprintf(&b, "- %s\n", ing.Ingredient)
			} else {
				fmt.Fprintf(&b, "- **%s** %s\n", amount, ing.Ingredient)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## 👨‍🍳 Instructions\n\n")
	if len(recipe.Instructions) == 0 {
		b.WriteString("Instructions coming soon! In the meantime, trust your cooking instincts! 🤞\n\n")
	} else {
		for i, step := range recipe.Instructions {
			number := step.Step.String()
			if number == "" {
				number = fmt.Sprint(i + 1)
			}
			fmt.Fprintf(&b, "%d. **Step %s** %s\n", i+1, number, step.Body())
		}
		b.WriteString("\n")
	}

	if n := recipe.Nutrition; n != nil {
		b.WriteString("## 📊 Nutrition Info\n\n")
		for _, fact := range []struct {
			label string
			value api.FlexString
		}{
			{"Calories", n.Calories},
			{"Protein", n.Protein},
			{"Carbs", n.Carbs},
			{"Fat", n.Fat},
		} {
			if fact.value != "" {
				fmt.Fprintf(&b, "- **%s:** %s\n", fact.label, fact.value)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("💪 **You've got this!** Remember, cooking is all about having fun and making it your own. Don't stress about perfection - just enjoy the process! 🎉\n")

	if recipe.URL != "" {
		fmt.Fprintf(&b, "\n**Original source:** [View Original Recipe](%s)\n", recipe.URL)
	}

	return b.String()
}
