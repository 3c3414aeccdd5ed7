package fake

import (
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/auth"
)

const demoTimeLayout = "2006-01-02T15:04:05"

// NewDemo returns a logged-in fake seeded with a plausible diary for day and
// the previous day, plus a small food, sports and recipe catalogue.
func NewDemo(tokens auth.TokenStore, day time.Time) *Backend {
	b := New(tokens)
	_ = b.tokens.Save("fake-token-demo")

	target := 2000.0
	age := 30
	height, weight := 172.0, 68.0
	b.SetProfile(api.Profile{
		ID:                 "u-demo",
		Username:           "demo",
		Gender:             "female",
		Age:                &age,
		Height:             &height,
		Weight:             &weight,
		ActivityLevel:      "moderate",
		GoalType:           "maintain",
		DailyCalorieTarget: &target,
	})

	for _, d := range []time.Time{day.AddDate(0, 0, -1), day} {
		at := func(hour, minute int) string {
			return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.Local).Format(demoTimeLayout)
		}
		b.SeedFoods(
			api.FoodRecord{ID: b.newID(), FoodName: "燕麦粥", MealType: "breakfast", RecordTime: at(8, 0),
				Amount: ptr(250), Unit: "g", Calories: ptr(180), Protein: ptr(6), Carbs: ptr(30), Fat: ptr(3.5)},
			api.FoodRecord{ID: b.newID(), FoodName: "水煮蛋", MealType: "breakfast", RecordTime: at(8, 0),
				Amount: ptr(1), Unit: "个", Calories: ptr(78), Protein: ptr(6.3), Carbs: ptr(0.6), Fat: ptr(5.3)},
			api.FoodRecord{ID: b.newID(), FoodName: "鸡胸肉沙拉", MealType: "lunch", RecordTime: at(12, 30),
				Amount: ptr(300), Unit: "g", Calories: ptr(420), Protein: ptr(38), Carbs: ptr(22), Fat: ptr(18), Fiber: ptr(6)},
			api.FoodRecord{ID: b.newID(), FoodName: "苹果", MealType: "snack", RecordTime: at(15, 45),
				Amount: ptr(180), Unit: "g", Protein: ptr(0.5), Carbs: ptr(25), Fat: ptr(0.3)},
			api.FoodRecord{ID: b.newID(), FoodName: "清蒸鱼", MealType: "dinner", RecordTime: at(19, 0),
				Amount: ptr(200), Unit: "g", Calories: ptr(260), Protein: ptr(40), Carbs: ptr(2), Fat: ptr(10),
				Notes: "少盐"},
		)
		b.SeedExercises(
			api.ExerciseRecord{ID: b.newID(), ExerciseName: "慢跑", ExerciseType: "CARDIO", RecordTime: at(7, 0),
				Duration: ptr(30), CaloriesBurned: ptr(280)},
			api.ExerciseRecord{ID: b.newID(), ExerciseName: "深蹲", ExerciseType: "STRENGTH", RecordTime: at(18, 0),
				Duration: ptr(20), CaloriesBurned: ptr(120)},
			api.ExerciseRecord{ID: b.newID(), ExerciseName: "拉伸", ExerciseType: "FLEXIBILITY", RecordTime: at(18, 0),
				Duration: ptr(10), CaloriesBurned: ptr(30)},
		)
	}

	servings := 2
	b.SeedCatalog(
		[]api.FoodItem{
			{ID: "f1", Name: "米饭", Category: "主食", Calories: 116, Protein: 2.6, Carbs: 25.9, Fat: 0.3},
			{ID: "f2", Name: "鸡胸肉", Category: "肉类", Calories: 133, Protein: 19.4, Carbs: 2.5, Fat: 5},
			{ID: "f3", Name: "西兰花", Category: "蔬菜", Calories: 36, Protein: 4.1, Carbs: 4.3, Fat: 0.6},
		},
		[]api.SportItem{
			{ID: "s1", Name: "跑步", ExerciseType: "CARDIO", METs: 9.8},
			{ID: "s2", Name: "游泳", ExerciseType: "CARDIO", METs: 8.0},
			{ID: "s3", Name: "瑜伽", ExerciseType: "FLEXIBILITY", METs: 2.5},
		},
		[]api.Recipe{{
			ID:          "r1",
			Name:        "番茄炒蛋",
			Description: "家常快手菜",
			Servings:    &servings,
			Calories:    ptr(210),
			Protein:     ptr(12),
			Carbs:       ptr(8),
			Fat:         ptr(14),
			Ingredients: []api.RecipeIngredient{
				{Name: "番茄", Amount: ptr(2), Unit: "个"},
				{Name: "鸡蛋", Amount: ptr(3), Unit: "个"},
			},
			Steps: []string{"鸡蛋打散炒熟盛出", "番茄炒软后加入鸡蛋翻炒"},
			Tags:  []string{"家常", "快手"},
		}},
	)
	return b
}
