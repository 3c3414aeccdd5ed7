package normalize

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/model"
)

func f(v float64) *float64 { return &v }

func decodeFood(t *testing.T, raw string) api.FoodRecord {
	t.Helper()
	var rec api.FoodRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return rec
}

func TestFood_FullRecord(t *testing.T) {
	raw := decodeFood(t, `{
		"id": 17,
		"food_name": "燕麦粥",
		"meal_type": "breakfast",
		"record_time": "2024-01-01T08:00:00",
		"amount": 250,
		"unit": "g",
		"calories": 180,
		"protein": 6,
		"carbs": 30,
		"fat": 3.5,
		"fiber": 4,
		"notes": "  加了蜂蜜 "
	}`)

	got, err := Food(raw)
	if err != nil {
		t.Fatalf("Food: %v", err)
	}
	if got.ID != "17" {
		t.Fatalf("ID = %q, want numeric id as string", got.ID)
	}
	if got.Name != "燕麦粥" || got.Unit != "g" || got.Notes != "加了蜂蜜" {
		t.Fatalf("unexpected strings: %+v", got)
	}
	if got.Meal != model.MealBreakfast {
		t.Fatalf("Meal = %v", got.Meal)
	}
	want := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	if !got.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", got.Time, want)
	}
	if got.Nutrition.Calories != 180 || !got.Nutrition.HasFiber || got.Nutrition.Fiber != 4 {
		t.Fatalf("unexpected nutrition: %+v", got.Nutrition)
	}
	if got.Nutrition.HasSugar || got.Nutrition.HasSodium {
		t.Fatalf("absent optionals reported present: %+v", got.Nutrition)
	}
}

func TestFood_Defaults(t *testing.T) {
	got, err := Food(api.FoodRecord{ID: "1", Name: "apple", CreatedAt: "2024-01-01 09:30:00"})
	if err != nil {
		t.Fatalf("Food: %v", err)
	}
	if got.Meal != model.MealUnspecified {
		t.Fatalf("missing meal_type should be unspecified, got %v", got.Meal)
	}
	if got.Name != "apple" {
		t.Fatalf("name alias not used: %q", got.Name)
	}
	if got.Notes != "" || got.Unit != "" || got.Amount != 0 {
		t.Fatalf("expected empty defaults, got %+v", got)
	}
	if got.Time.Hour() != 9 || got.Time.Minute() != 30 {
		t.Fatalf("created_at fallback not used: %v", got.Time)
	}
}

func TestFood_ReconstructsCalories(t *testing.T) {
	got, err := Food(api.FoodRecord{
		ID: "1", RecordTime: "2024-01-01T08:00:00",
		Protein: f(10), Carbs: f(20), Fat: f(5),
	})
	if err != nil {
		t.Fatalf("Food: %v", err)
	}
	if got.Nutrition.Calories != 165 {
		t.Fatalf("Calories = %v, want 165", got.Nutrition.Calories)
	}
}

func TestFood_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     api.FoodRecord
		field   string
		wantErr error
	}{
		{
			name:    "unknown meal",
			raw:     api.FoodRecord{ID: "1", RecordTime: "2024-01-01T08:00:00", MealType: "brunch"},
			field:   "meal_type",
			wantErr: model.ErrUnknownValue,
		},
		{
			name:    "case mismatch is not silently accepted",
			raw:     api.FoodRecord{ID: "1", RecordTime: "2024-01-01T08:00:00", MealType: "BREAKFAST"},
			field:   "meal_type",
			wantErr: model.ErrUnknownValue,
		},
		{
			name:    "bad timestamp",
			raw:     api.FoodRecord{ID: "1", RecordTime: "yesterday"},
			field:   "record_time",
			wantErr: model.ErrBadTimestamp,
		},
		{
			name:    "missing timestamp",
			raw:     api.FoodRecord{ID: "1"},
			field:   "record_time",
			wantErr: model.ErrMissingField,
		},
		{
			name:    "missing id",
			raw:     api.FoodRecord{RecordTime: "2024-01-01T08:00:00"},
			field:   "id",
			wantErr: model.ErrMissingField,
		},
		{
			name:    "negative calories",
			raw:     api.FoodRecord{ID: "1", RecordTime: "2024-01-01T08:00:00", Calories: f(-5)},
			field:   "calories",
			wantErr: model.ErrNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Food(tt.raw)
			var de *model.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if de.Field != tt.field {
				t.Fatalf("Field = %q, want %q", de.Field, tt.field)
			}
			if de.Kind != "food" {
				t.Fatalf("Kind = %q, want food", de.Kind)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFood_DecodeErrorNamesRecord(t *testing.T) {
	_, err := Food(api.FoodRecord{ID: "7", RecordTime: "2024-01-01T08:00:00", MealType: "brunch"})
	want := `decode food 7: field "meal_type": unrecognized value "brunch"`
	if err == nil || err.Error() != want {
		t.Fatalf("error = %v, want %s", err, want)
	}
}

func TestExercise(t *testing.T) {
	got, err := Exercise(api.ExerciseRecord{
		ID:             "e1",
		ExerciseName:   "慢跑",
		ExerciseType:   "CARDIO",
		RecordTime:     "2024-01-01T07:00:00Z",
		Duration:       f(30.5),
		CaloriesBurned: f(280),
	})
	if err != nil {
		t.Fatalf("Exercise: %v", err)
	}
	if got.Category != model.ExerciseCardio {
		t.Fatalf("Category = %v", got.Category)
	}
	if got.Duration != 30*time.Minute+30*time.Second {
		t.Fatalf("Duration = %v", got.Duration)
	}
	if got.CaloriesBurned != 280 || got.Name != "慢跑" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Time.Location() != time.UTC {
		t.Fatalf("explicit zone should be kept, got %v", got.Time.Location())
	}
}

func TestExercise_UnknownCategory(t *testing.T) {
	_, err := Exercise(api.ExerciseRecord{ID: "e1", RecordTime: "2024-01-01T07:00:00", ExerciseType: "cardio"})
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Field != "exercise_type" || de.Value != "cardio" {
		t.Fatalf("expected exercise_type DecodeError, got %v", err)
	}
	if de.RecordID != "e1" {
		t.Fatalf("RecordID = %q", de.RecordID)
	}
}

func TestExercise_MissingCategoryIsUnspecified(t *testing.T) {
	got, err := Exercise(api.ExerciseRecord{ID: "e1", RecordTime: "2024-01-01T07:00:00"})
	if err != nil {
		t.Fatalf("Exercise: %v", err)
	}
	if got.Category != model.ExerciseUnspecified || got.Duration != 0 {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestRecipe(t *testing.T) {
	servings := 0
	got, err := Recipe(api.Recipe{
		ID:          "r1",
		Name:        " 番茄炒蛋 ",
		Servings:    &servings,
		Calories:    f(210),
		Ingredients: []api.RecipeIngredient{{Name: "番茄", Amount: f(2), Unit: "个"}, {Name: "盐"}},
		Steps:       []string{"炒蛋", " ", "炒番茄"},
	})
	if err != nil {
		t.Fatalf("Recipe: %v", err)
	}
	if got.Name != "番茄炒蛋" || got.Servings != 1 {
		t.Fatalf("unexpected recipe: %+v", got)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[1].Amount != 0 {
		t.Fatalf("unexpected ingredients: %+v", got.Ingredients)
	}
	if len(got.Steps) != 2 {
		t.Fatalf("blank steps should be dropped: %q", got.Steps)
	}
	if got.Tags != nil {
		t.Fatalf("Tags = %v, want nil", got.Tags)
	}
}

func TestRecipe_NegativeIngredient(t *testing.T) {
	_, err := Recipe(api.Recipe{ID: "r1", Ingredients: []api.RecipeIngredient{{Name: "x", Amount: f(-1)}}})
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Field != "ingredients[0].amount" {
		t.Fatalf("expected ingredient DecodeError, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	age := 30
	got, err := Profile(api.Profile{
		ID:            "u1",
		Username:      "alice",
		Gender:        "female",
		Age:           &age,
		Height:        f(165),
		Weight:        f(55),
		ActivityLevel: "very_active",
		GoalType:      "lose_weight",
	})
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Gender != model.GenderFemale || got.ActivityLevel != model.ActivityVeryActive || got.Goal != model.GoalLoseWeight {
		t.Fatalf("unexpected enums: %+v", got)
	}
	if got.DailyCalorieTarget != 0 {
		t.Fatalf("missing target should be 0, got %v", got.DailyCalorieTarget)
	}
}

func TestProfile_UnknownGoal(t *testing.T) {
	_, err := Profile(api.Profile{ID: "u1", GoalType: "bulk"})
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Field != "goal_type" || de.Kind != "profile" {
		t.Fatalf("expected goal_type DecodeError, got %v", err)
	}
}

func TestParseTime(t *testing.T) {
	for _, in := range []string{
		"2024-01-01T08:00:00.123456Z",
		"2024-01-01T08:00:00+08:00",
		"2024-01-01T08:00:00",
		"2024-01-01 08:00:00",
	} {
		if _, err := ParseTime(in); err != nil {
			t.Errorf("ParseTime(%q): %v", in, err)
		}
	}
	if _, err := ParseTime("01/02/2024"); !errors.Is(err, model.ErrBadTimestamp) {
		t.Fatalf("expected ErrBadTimestamp, got %v", err)
	}
}
