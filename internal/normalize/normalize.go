// Package normalize maps raw backend payloads onto the canonical model.
//
// Every optional field resolves to an explicit default: missing strings become
// "", missing numbers become 0, a missing meal or exercise category becomes
// the Unspecified variant. Anything the model cannot represent faithfully (an
// unknown enum token, a negative amount, an unparseable timestamp) fails with
// a *model.DecodeError instead of being defaulted.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/model"
)

// TimeLayouts are the timestamp formats accepted from the backend, tried in
// order. Layouts without a zone are interpreted in the local time zone.
var TimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const (
	kindFood     = "food"
	kindExercise = "exercise"
	kindRecipe   = "recipe"
	kindProfile  = "profile"
)

// Food normalizes one food record.
func Food(raw api.FoodRecord) (model.FoodRecord, error) {
	d := decoder{kind: kindFood, id: string(raw.ID)}

	rec := model.FoodRecord{
		ID:    d.requireID(),
		Name:  firstNonEmpty(raw.FoodName, raw.Name),
		Time:  d.timestamp(raw.RecordTime, raw.CreatedAt),
		Unit:  strings.TrimSpace(raw.Unit),
		Notes: strings.TrimSpace(raw.Notes),
	}
	rec.Meal = d.meal(raw.MealType)
	rec.Amount = d.number("amount", raw.Amount)
	rec.Nutrition = d.nutrition(raw.Calories, raw.Protein, raw.Carbs, raw.Fat, raw.Fiber, raw.Sugar, raw.Sodium)

	if d.err != nil {
		return model.FoodRecord{}, d.err
	}
	return rec, nil
}

// Exercise normalizes one exercise record. Duration arrives in minutes.
func Exercise(raw api.ExerciseRecord) (model.ExerciseRecord, error) {
	d := decoder{kind: kindExercise, id: string(raw.ID)}

	rec := model.ExerciseRecord{
		ID:    d.requireID(),
		Name:  firstNonEmpty(raw.ExerciseName, raw.Name),
		Time:  d.timestamp(raw.RecordTime, raw.CreatedAt),
		Notes: strings.TrimSpace(raw.Notes),
	}
	rec.Category = d.category(raw.ExerciseType)
	minutes := d.number("duration", raw.Duration)
	rec.Duration = time.Duration(minutes * float64(time.Minute))
	rec.CaloriesBurned = d.number("calories_burned", raw.CaloriesBurned)

	if d.err != nil {
		return model.ExerciseRecord{}, d.err
	}
	return rec, nil
}

// Recipe normalizes a recipe. A missing or non-positive serving count is
// treated as a single serving.
func Recipe(raw api.Recipe) (model.Recipe, error) {
	d := decoder{kind: kindRecipe, id: string(raw.ID)}

	rec := model.Recipe{
		ID:          d.requireID(),
		Name:        strings.TrimSpace(raw.Name),
		Description: strings.TrimSpace(raw.Description),
		Servings:    1,
		Steps:       nonEmpty(raw.Steps),
		Tags:        nonEmpty(raw.Tags),
	}
	if raw.Servings != nil && *raw.Servings > 0 {
		rec.Servings = *raw.Servings
	}
	rec.Nutrition = d.nutrition(raw.Calories, raw.Protein, raw.Carbs, raw.Fat, nil, nil, nil)
	for i, ing := range raw.Ingredients {
		rec.Ingredients = append(rec.Ingredients, model.Ingredient{
			Name:   strings.TrimSpace(ing.Name),
			Amount: d.number(fmt.Sprintf("ingredients[%d].amount", i), ing.Amount),
			Unit:   strings.TrimSpace(ing.Unit),
		})
	}

	if d.err != nil {
		return model.Recipe{}, d.err
	}
	return rec, nil
}

// Profile normalizes the user profile. Missing enum fields stay at their zero
// value; unknown tokens are rejected.
func Profile(raw api.Profile) (model.Profile, error) {
	d := decoder{kind: kindProfile, id: string(raw.ID)}

	p := model.Profile{
		ID:       string(raw.ID),
		Username: strings.TrimSpace(raw.Username),
	}
	if raw.Age != nil {
		if *raw.Age < 0 {
			d.fail("age", fmt.Sprint(*raw.Age), model.ErrNegative)
		} else {
			p.Age = *raw.Age
		}
	}
	p.HeightCm = d.number("height", raw.Height)
	p.WeightKg = d.number("weight", raw.Weight)
	p.DailyCalorieTarget = d.number("daily_calorie_target", raw.DailyCalorieTarget)

	if tok := strings.TrimSpace(raw.Gender); tok != "" {
		g, err := model.ParseGender(tok)
		d.enumErr(err)
		p.Gender = g
	}
	if tok := strings.TrimSpace(raw.ActivityLevel); tok != "" {
		a, err := model.ParseActivityLevel(tok)
		d.enumErr(err)
		p.ActivityLevel = a
	}
	if tok := strings.TrimSpace(raw.GoalType); tok != "" {
		g, err := model.ParseGoalType(tok)
		d.enumErr(err)
		p.Goal = g
	}

	if d.err != nil {
		return model.Profile{}, d.err
	}
	return p, nil
}

// ParseTime parses a backend timestamp with the supported layouts.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range TimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, model.ErrBadTimestamp
}

// decoder accumulates the first failure while a record is being normalized so
// the field mapping reads top to bottom.
type decoder struct {
	kind string
	id   string
	err  error
}

func (d *decoder) fail(field, value string, cause error) {
	if d.err != nil {
		return
	}
	d.err = &model.DecodeError{Kind: d.kind, RecordID: d.id, Field: field, Value: value, Err: cause}
}

// enumErr stamps record context onto an enum parse failure.
func (d *decoder) enumErr(err error) {
	if err == nil || d.err != nil {
		return
	}
	if de, ok := err.(*model.DecodeError); ok {
		d.fail(de.Field, de.Value, de.Err)
		return
	}
	d.err = err
}

func (d *decoder) requireID() string {
	id := strings.TrimSpace(d.id)
	if id == "" {
		d.fail("id", "", model.ErrMissingField)
	}
	return id
}

func (d *decoder) timestamp(recordTime, createdAt string) time.Time {
	value := strings.TrimSpace(recordTime)
	if value == "" {
		value = strings.TrimSpace(createdAt)
	}
	if value == "" {
		d.fail("record_time", "", model.ErrMissingField)
		return time.Time{}
	}
	t, err := ParseTime(value)
	if err != nil {
		d.fail("record_time", value, err)
		return time.Time{}
	}
	return t
}

func (d *decoder) number(field string, v *float64) float64 {
	if v == nil {
		return 0
	}
	if *v < 0 {
		d.fail(field, fmt.Sprint(*v), model.ErrNegative)
		return 0
	}
	return *v
}

func (d *decoder) meal(token string) model.MealType {
	if strings.TrimSpace(token) == "" {
		return model.MealUnspecified
	}
	m, err := model.ParseMealType(token)
	d.enumErr(err)
	return m
}

func (d *decoder) category(token string) model.ExerciseCategory {
	if strings.TrimSpace(token) == "" {
		return model.ExerciseUnspecified
	}
	c, err := model.ParseExerciseCategory(token)
	d.enumErr(err)
	return c
}

func (d *decoder) nutrition(calories, protein, carbs, fat, fiber, sugar, sodium *float64) model.NutritionFacts {
	n := model.NutritionFacts{
		Protein: d.number("protein", protein),
		Carbs:   d.number("carbs", carbs),
		Fat:     d.number("fat", fat),
	}
	if calories != nil {
		n.Calories = d.number("calories", calories)
	} else {
		n.Calories = n.ReconstructedCalories()
	}
	if fiber != nil {
		n.Fiber, n.HasFiber = d.number("fiber", fiber), true
	}
	if sugar != nil {
		n.Sugar, n.HasSugar = d.number("sugar", sugar), true
	}
	if sodium != nil {
		n.Sodium, n.HasSodium = d.number("sodium", sodium), true
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
