// Package timeline merges a day's food and exercise records into one
// chronologically ordered sequence of meal and workout groups.
package timeline

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/model"
	"github.com/five82/fitlog/internal/normalize"
)

// groupNamespace scopes the name-based group ids.
var groupNamespace = uuid.MustParse("8f0c5a52-2f51-4bd4-9d4a-6f1f1d2b7c31")

// MealGroup is a set of food records sharing a timestamp and meal type.
type MealGroup struct {
	ID    string
	Time  time.Time
	Meal  model.MealType
	Foods []model.FoodRecord
}

// MealTotals are the derived sums over a MealGroup.
type MealTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Totals sums the members. It is recomputed on every call.
func (g MealGroup) Totals() MealTotals {
	var t MealTotals
	for _, f := range g.Foods {
		t.Calories += f.Nutrition.Calories
		t.Protein += f.Nutrition.Protein
		t.Carbs += f.Nutrition.Carbs
		t.Fat += f.Nutrition.Fat
	}
	return t
}

// WorkoutGroup is a set of exercise records sharing a timestamp. A session
// may mix categories.
type WorkoutGroup struct {
	ID        string
	Time      time.Time
	Exercises []model.ExerciseRecord
}

// WorkoutTotals are the derived sums over a WorkoutGroup.
type WorkoutTotals struct {
	CaloriesBurned float64
	Duration       time.Duration
}

// Totals sums the members.
func (g WorkoutGroup) Totals() WorkoutTotals {
	var t WorkoutTotals
	for _, e := range g.Exercises {
		t.CaloriesBurned += e.CaloriesBurned
		t.Duration += e.Duration
	}
	return t
}

// Entry is one timeline item. Exactly one of Meal and Workout is set.
type Entry struct {
	Meal    *MealGroup
	Workout *WorkoutGroup
}

// ID returns the group id of whichever payload is set.
func (e Entry) ID() string {
	switch {
	case e.Meal != nil:
		return e.Meal.ID
	case e.Workout != nil:
		return e.Workout.ID
	}
	return ""
}

// Time returns the display timestamp of the entry.
func (e Entry) Time() time.Time {
	switch {
	case e.Meal != nil:
		return e.Meal.Time
	case e.Workout != nil:
		return e.Workout.Time
	}
	return time.Time{}
}

// Timeline is the ordered merge of all groups for a day.
type Timeline []Entry

// Meals returns the meal groups in timeline order.
func (tl Timeline) Meals() []MealGroup {
	var out []MealGroup
	for _, e := range tl {
		if e.Meal != nil {
			out = append(out, *e.Meal)
		}
	}
	return out
}

// Workouts returns the workout groups in timeline order.
func (tl Timeline) Workouts() []WorkoutGroup {
	var out []WorkoutGroup
	for _, e := range tl {
		if e.Workout != nil {
			out = append(out, *e.Workout)
		}
	}
	return out
}

// Aggregate normalizes and groups the given records. Records that fail to
// normalize are skipped and reported in the returned error slice; the rest
// are still aggregated. Empty input yields an empty timeline and no errors.
func Aggregate(foods []api.FoodRecord, exercises []api.ExerciseRecord) (Timeline, []error) {
	var skipped []error

	type mealKey struct {
		at   int64
		meal model.MealType
	}
	var meals []*MealGroup
	mealIndex := map[mealKey]*MealGroup{}
	for _, raw := range foods {
		rec, err := normalize.Food(raw)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		key := mealKey{at: rec.Time.UnixNano(), meal: rec.Meal}
		g, ok := mealIndex[key]
		if !ok {
			g = &MealGroup{ID: groupID("meal", rec.Time, rec.Meal.String()), Time: rec.Time, Meal: rec.Meal}
			mealIndex[key] = g
			meals = append(meals, g)
		}
		g.Foods = append(g.Foods, rec)
	}

	var workouts []*WorkoutGroup
	workoutIndex := map[int64]*WorkoutGroup{}
	for _, raw := range exercises {
		rec, err := normalize.Exercise(raw)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		key := rec.Time.UnixNano()
		g, ok := workoutIndex[key]
		if !ok {
			g = &WorkoutGroup{ID: groupID("workout", rec.Time, ""), Time: rec.Time}
			workoutIndex[key] = g
			workouts = append(workouts, g)
		}
		g.Exercises = append(g.Exercises, rec)
	}

	tl := make(Timeline, 0, len(meals)+len(workouts))
	for _, g := range meals {
		tl = append(tl, Entry{Meal: g})
	}
	for _, g := range workouts {
		tl = append(tl, Entry{Workout: g})
	}
	// Stable sort keeps meals ahead of workouts at equal times, and groups of
	// one kind in first-seen order.
	sort.SliceStable(tl, func(i, j int) bool {
		return tl[i].Time().Before(tl[j].Time())
	})
	return tl, skipped
}

// groupID derives a name-based id from the grouping key so it does not depend
// on record order.
func groupID(kind string, at time.Time, category string) string {
	name := kind + "|" + at.UTC().Format(time.RFC3339Nano) + "|" + category
	return uuid.NewSHA1(groupNamespace, []byte(name)).String()
}
