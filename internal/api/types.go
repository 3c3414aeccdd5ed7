package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a backend identifier. The backend sends ids as JSON strings on some
// endpoints and as numbers on others; both decode to the same string form.
type ID string

// UnmarshalJSON accepts both numeric and string ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// TokenResponse mirrors the login, register and refresh payloads.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	TokenType   string `json:"token_type"`
}

// Value returns whichever token field the backend populated.
func (t TokenResponse) Value() string {
	if v := strings.TrimSpace(t.AccessToken); v != "" {
		return v
	}
	return strings.TrimSpace(t.Token)
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// Profile mirrors /api/user/profile.
type Profile struct {
	ID                 ID       `json:"id"`
	Username           string   `json:"username"`
	Gender             string   `json:"gender"`
	Age                *int     `json:"age"`
	Height             *float64 `json:"height"`
	Weight             *float64 `json:"weight"`
	ActivityLevel      string   `json:"activity_level"`
	GoalType           string   `json:"goal_type"`
	DailyCalorieTarget *float64 `json:"daily_calorie_target"`
}

// FoodRecord mirrors one element of /api/food/records. Optional numbers are
// pointers so a missing field is distinguishable from zero.
type FoodRecord struct {
	ID         ID       `json:"id"`
	FoodName   string   `json:"food_name"`
	Name       string   `json:"name"`
	MealType   string   `json:"meal_type"`
	RecordTime string   `json:"record_time"`
	CreatedAt  string   `json:"created_at"`
	Amount     *float64 `json:"amount"`
	Unit       string   `json:"unit"`
	Calories   *float64 `json:"calories"`
	Protein    *float64 `json:"protein"`
	Carbs      *float64 `json:"carbs"`
	Fat        *float64 `json:"fat"`
	Fiber      *float64 `json:"fiber"`
	Sugar      *float64 `json:"sugar"`
	Sodium     *float64 `json:"sodium"`
	Notes      string   `json:"notes"`
}

// FoodInput is the body of POST /api/food/records.
type FoodInput struct {
	FoodName   string   `json:"food_name"`
	MealType   string   `json:"meal_type"`
	RecordTime string   `json:"record_time"`
	Amount     float64  `json:"amount"`
	Unit       string   `json:"unit,omitempty"`
	Calories   float64  `json:"calories"`
	Protein    float64  `json:"protein"`
	Carbs      float64  `json:"carbs"`
	Fat        float64  `json:"fat"`
	Fiber      *float64 `json:"fiber,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// ExerciseRecord mirrors one element of /api/exercise/records.
type ExerciseRecord struct {
	ID             ID       `json:"id"`
	ExerciseName   string   `json:"exercise_name"`
	Name           string   `json:"name"`
	ExerciseType   string   `json:"exercise_type"`
	RecordTime     string   `json:"record_time"`
	CreatedAt      string   `json:"created_at"`
	Duration       *float64 `json:"duration"` // minutes
	CaloriesBurned *float64 `json:"calories_burned"`
	Notes          string   `json:"notes"`
}

// ExerciseInput is the body of POST /api/exercise/records.
type ExerciseInput struct {
	ExerciseName   string  `json:"exercise_name"`
	ExerciseType   string  `json:"exercise_type"`
	RecordTime     string  `json:"record_time"`
	Duration       float64 `json:"duration"`
	CaloriesBurned float64 `json:"calories_burned"`
	Notes          string  `json:"notes,omitempty"`
}

// FoodItem is a food search hit. Nutrition is per 100 g.
type FoodItem struct {
	ID       ID      `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// SportItem is a sports search hit.
type SportItem struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	ExerciseType string  `json:"exercise_type"`
	METs         float64 `json:"mets"`
}

// Recipe mirrors /api/recipes entries.
type Recipe struct {
	ID          ID                 `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Servings    *int               `json:"servings"`
	Calories    *float64           `json:"calories"`
	Protein     *float64           `json:"protein"`
	Carbs       *float64           `json:"carbs"`
	Fat         *float64           `json:"fat"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []string           `json:"steps"`
	Tags        []string           `json:"tags"`
}

// RecipeIngredient is one ingredient line.
type RecipeIngredient struct {
	Name   string   `json:"name"`
	Amount *float64 `json:"amount"`
	Unit   string   `json:"unit"`
}

// DailySummary mirrors /api/summary/daily.
type DailySummary struct {
	Date           string  `json:"date"`
	TotalCalories  float64 `json:"total_calories"`
	TotalProtein   float64 `json:"total_protein"`
	TotalCarbs     float64 `json:"total_carbs"`
	TotalFat       float64 `json:"total_fat"`
	CaloriesBurned float64 `json:"calories_burned"`
	TargetCalories float64 `json:"target_calories"`
}

// Suggestion kinds accepted by /api/ai/suggestions.
const (
	SuggestDiet     = "diet"
	SuggestExercise = "exercise"
)

// SuggestionRequest is the body of POST /api/ai/suggestions.
type SuggestionRequest struct {
	Type string `json:"type"`
	Date string `json:"date,omitempty"`
}

// Suggestion is an AI-generated recommendation.
type Suggestion struct {
	Type       string `json:"type"`
	Suggestion string `json:"suggestion"`
}

// envelope is the optional {code, message, data} wrapper.
type envelope struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// errorBody covers the {detail} and {message} error payloads. detail is either
// a string or a list of validation entries carrying msg.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}
