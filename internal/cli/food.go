package cli

import (
	"fmt"
	"strings"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/logger"
	"github.com/five82/fitlog/internal/model"
)

type FoodCmd struct {
	Add    FoodAddCmd    `cmd:"" help:"Record a food."`
	Delete FoodDeleteCmd `cmd:"" help:"Delete a food record."`
	Search FoodSearchCmd `cmd:"" help:"Search the food catalogue."`
}

type FoodAddCmd struct {
	Name     string  `arg:"" help:"Food name."`
	Meal     string  `short:"m" help:"Meal (breakfast, lunch, dinner, snack or 早餐/午餐/晚餐/加餐); inferred from the time when omitted."`
	At       string  `help:"Record time (HH:MM or YYYY-MM-DDTHH:MM:SS); defaults to now."`
	Amount   float64 `short:"a" help:"Amount eaten." default:"100"`
	Unit     string  `help:"Amount unit." default:"g"`
	Calories float64 `short:"c" help:"Energy in kcal; derived from the macros when omitted."`
	Protein  float64 `help:"Protein in grams."`
	Carbs    float64 `help:"Carbohydrates in grams."`
	Fat      float64 `help:"Fat in grams."`
	Notes    string  `help:"Free-form note."`
}

// Validate is called by kong after flags are parsed.
func (cmd *FoodAddCmd) Validate() error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("food name is required")
	}
	for name, v := range map[string]float64{
		"amount": cmd.Amount, "calories": cmd.Calories,
		"protein": cmd.Protein, "carbs": cmd.Carbs, "fat": cmd.Fat,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

func (cmd *FoodAddCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	at, err := parseAt(cmd.At, c.now())
	if err != nil {
		return err
	}
	meal, err := parseMeal(cmd.Meal, at)
	if err != nil {
		return err
	}

	calories := cmd.Calories
	if calories == 0 {
		calories = model.NutritionFacts{Protein: cmd.Protein, Carbs: cmd.Carbs, Fat: cmd.Fat}.ReconstructedCalories()
	}

	rec, err := backend.AddFood(c.context(), api.FoodInput{
		FoodName:   strings.TrimSpace(cmd.Name),
		MealType:   meal.Backend(),
		RecordTime: at.Format(recordLayout),
		Amount:     cmd.Amount,
		Unit:       cmd.Unit,
		Calories:   calories,
		Protein:    cmd.Protein,
		Carbs:      cmd.Carbs,
		Fat:        cmd.Fat,
		Notes:      cmd.Notes,
	})
	if err != nil {
		return err
	}
	logger.Info("food added", "id", rec.ID, "name", cmd.Name, "meal", meal)
	c.printf("已记录 %s %s %.0f kcal (id %s)\n", meal.Label(), strings.TrimSpace(cmd.Name), calories, rec.ID)
	return nil
}

type FoodDeleteCmd struct {
	ID string `arg:"" help:"Record id."`
}

func (cmd *FoodDeleteCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	if err := backend.DeleteFood(c.context(), cmd.ID); err != nil {
		return err
	}
	logger.Info("food deleted", "id", cmd.ID)
	c.printf("已删除食物记录 %s\n", cmd.ID)
	return nil
}

type FoodSearchCmd struct {
	Keyword string `arg:"" help:"Name fragment to search for."`
}

func (cmd *FoodSearchCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	items, err := backend.SearchFoods(c.context(), cmd.Keyword)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		c.printf("没有找到 %q\n", cmd.Keyword)
		return nil
	}
	c.printf("每 100g\n")
	for _, it := range items {
		c.printf("%-6s %-12s %6.0f kcal  蛋白质 %5.1fg  碳水 %5.1fg  脂肪 %5.1fg  %s\n",
			it.ID, it.Name, it.Calories, it.Protein, it.Carbs, it.Fat, it.Category)
	}
	return nil
}
