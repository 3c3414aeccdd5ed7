package model

import "time"

// NutritionFacts holds macro- and micronutrient amounts. Calories are kcal,
// macros and fiber/sugar are grams, sodium is milligrams.
type NutritionFacts struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64

	Fiber     float64
	Sugar     float64
	Sodium    float64
	HasFiber  bool
	HasSugar  bool
	HasSodium bool
}

// ReconstructedCalories derives energy from the macros using the 4/4/9 rule.
func (n NutritionFacts) ReconstructedCalories() float64 {
	return n.Protein*4 + n.Carbs*4 + n.Fat*9
}

// Add returns the field-wise sum of n and o. Optional fields are present on
// the result when present on either side.
func (n NutritionFacts) Add(o NutritionFacts) NutritionFacts {
	return NutritionFacts{
		Calories:  n.Calories + o.Calories,
		Protein:   n.Protein + o.Protein,
		Carbs:     n.Carbs + o.Carbs,
		Fat:       n.Fat + o.Fat,
		Fiber:     n.Fiber + o.Fiber,
		Sugar:     n.Sugar + o.Sugar,
		Sodium:    n.Sodium + o.Sodium,
		HasFiber:  n.HasFiber || o.HasFiber,
		HasSugar:  n.HasSugar || o.HasSugar,
		HasSodium: n.HasSodium || o.HasSodium,
	}
}

// FoodRecord is a canonical food diary entry.
type FoodRecord struct {
	ID        string
	Name      string
	Time      time.Time
	Meal      MealType
	Amount    float64
	Unit      string
	Nutrition NutritionFacts
	Notes     string
}

// ExerciseRecord is a canonical exercise diary entry.
type ExerciseRecord struct {
	ID             string
	Name           string
	Time           time.Time
	Category       ExerciseCategory
	Duration       time.Duration
	CaloriesBurned float64
	Notes          string
}

// Ingredient is one line of a recipe.
type Ingredient struct {
	Name   string
	Amount float64
	Unit   string
}

// Recipe is a canonical recipe with per-serving nutrition.
type Recipe struct {
	ID          string
	Name        string
	Description string
	Servings    int
	Nutrition   NutritionFacts
	Ingredients []Ingredient
	Steps       []string
	Tags        []string
}

// Profile is the canonical user profile.
type Profile struct {
	ID                 string
	Username           string
	Gender             Gender
	Age                int
	HeightCm           float64
	WeightKg           float64
	ActivityLevel      ActivityLevel
	Goal               GoalType
	DailyCalorieTarget float64
}
