package cli

import (
	"strings"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/logger"
	"github.com/five82/fitlog/internal/normalize"
)

type RecipeCmd struct {
	Search RecipeSearchCmd `cmd:"" help:"Search recipes by name."`
	Show   RecipeShowCmd   `cmd:"" help:"Show one recipe."`
}

type RecipeSearchCmd struct {
	Keyword string `arg:"" help:"Name fragment to search for."`
}

func (cmd *RecipeSearchCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	raw, err := backend.SearchRecipes(c.context(), cmd.Keyword)
	if err != nil {
		return err
	}
	shown := 0
	for _, r := range raw {
		recipe, err := normalize.Recipe(r)
		if err != nil {
			logger.Warn("skipped recipe", "id", r.ID, "error", err)
			continue
		}
		shown++
		c.printf("%-6s %-12s %4.0f kcal/份  %s\n", recipe.ID, recipe.Name, recipe.Nutrition.Calories, strings.Join(recipe.Tags, ","))
	}
	if shown == 0 {
		c.printf("没有找到 %q\n", cmd.Keyword)
	}
	return nil
}

type RecipeShowCmd struct {
	ID string `arg:"" help:"Recipe id."`
}

func (cmd *RecipeShowCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	raw, err := backend.Recipe(c.context(), cmd.ID)
	if err != nil {
		return err
	}
	printRecipe(c, raw)
	return nil
}

func printRecipe(c *Context, raw api.Recipe) {
	r, err := normalize.Recipe(raw)
	if err != nil {
		// Show what the server sent rather than nothing.
		logger.Warn("recipe decode failed", "id", raw.ID, "error", err)
		c.printf("%s (%s)\n", raw.Name, err)
		return
	}
	c.printf("%s  (%d 份)\n", r.Name, r.Servings)
	if r.Description != "" {
		c.printf("%s\n", r.Description)
	}
	n := r.Nutrition
	c.printf("每份: %.0f kcal  蛋白质 %.1fg  碳水 %.1fg  脂肪 %.1fg\n", n.Calories, n.Protein, n.Carbs, n.Fat)
	if len(r.Ingredients) > 0 {
		c.printf("\n食材\n")
		for _, in := range r.Ingredients {
			if in.Amount > 0 {
				c.printf("  %s %g%s\n", in.Name, in.Amount, in.Unit)
			} else {
				c.printf("  %s\n", in.Name)
			}
		}
	}
	if len(r.Steps) > 0 {
		c.printf("\n步骤\n")
		for i, s := range r.Steps {
			c.printf("  %d. %s\n", i+1, s)
		}
	}
	if len(r.Tags) > 0 {
		c.printf("\n标签: %s\n", strings.Join(r.Tags, ", "))
	}
}
