package model

import "strings"

// vocab binds the variants of one closed enumeration to their backend token
// and their UI label. Both mappings are one-to-one.
type vocab[T ~int] struct {
	field   string
	entries []vocabEntry[T]
}

type vocabEntry[T ~int] struct {
	value   T
	backend string
	label   string
}

func (v vocab[T]) parse(token string) (T, error) {
	trimmed := strings.TrimSpace(token)
	for _, e := range v.entries {
		if e.backend != "" && e.backend == trimmed {
			return e.value, nil
		}
	}
	var zero T
	return zero, &DecodeError{Field: v.field, Value: token, Err: ErrUnknownValue}
}

func (v vocab[T]) fromLabel(label string) (T, error) {
	trimmed := strings.TrimSpace(label)
	for _, e := range v.entries {
		if e.label == trimmed {
			return e.value, nil
		}
	}
	var zero T
	return zero, &DecodeError{Field: v.field, Value: label, Err: ErrUnknownValue}
}

func (v vocab[T]) backend(x T) string {
	for _, e := range v.entries {
		if e.value == x {
			return e.backend
		}
	}
	return ""
}

func (v vocab[T]) label(x T) string {
	for _, e := range v.entries {
		if e.value == x {
			return e.label
		}
	}
	return ""
}

// tokens lists the backend-valid tokens in declaration order.
func (v vocab[T]) tokens() []string {
	out := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		if e.backend != "" {
			out = append(out, e.backend)
		}
	}
	return out
}

// MealType is the meal category of a food record.
type MealType int

const (
	MealUnspecified MealType = iota
	MealBreakfast
	MealLunch
	MealDinner
	MealSnack
)

var mealTypes = vocab[MealType]{
	field: "meal_type",
	entries: []vocabEntry[MealType]{
		{MealUnspecified, "", "未指定"},
		{MealBreakfast, "breakfast", "早餐"},
		{MealLunch, "lunch", "午餐"},
		{MealDinner, "dinner", "晚餐"},
		{MealSnack, "snack", "加餐"},
	},
}

// ParseMealType maps a backend token such as "breakfast" onto a MealType.
func ParseMealType(token string) (MealType, error) { return mealTypes.parse(token) }

// MealTypeFromLabel maps a UI label such as "早餐" onto a MealType.
func MealTypeFromLabel(label string) (MealType, error) { return mealTypes.fromLabel(label) }

// MealTypeTokens returns every backend token for meal types.
func MealTypeTokens() []string { return mealTypes.tokens() }

// Backend returns the backend token, or "" for MealUnspecified.
func (m MealType) Backend() string { return mealTypes.backend(m) }

// Label returns the UI label.
func (m MealType) Label() string { return mealTypes.label(m) }

func (m MealType) String() string {
	if b := m.Backend(); b != "" {
		return b
	}
	return "unspecified"
}

// ExerciseCategory classifies an exercise record.
type ExerciseCategory int

const (
	ExerciseUnspecified ExerciseCategory = iota
	ExerciseCardio
	ExerciseStrength
	ExerciseFlexibility
	ExerciseSports
	ExerciseOther
)

var exerciseCategories = vocab[ExerciseCategory]{
	field: "exercise_type",
	entries: []vocabEntry[ExerciseCategory]{
		{ExerciseUnspecified, "", "未指定"},
		{ExerciseCardio, "CARDIO", "有氧运动"},
		{ExerciseStrength, "STRENGTH", "力量训练"},
		{ExerciseFlexibility, "FLEXIBILITY", "柔韧性训练"},
		{ExerciseSports, "SPORTS", "球类运动"},
		{ExerciseOther, "OTHER", "其他"},
	},
}

// ParseExerciseCategory maps a backend token such as "CARDIO".
func ParseExerciseCategory(token string) (ExerciseCategory, error) {
	return exerciseCategories.parse(token)
}

// ExerciseCategoryFromLabel maps a UI label such as "有氧运动".
func ExerciseCategoryFromLabel(label string) (ExerciseCategory, error) {
	return exerciseCategories.fromLabel(label)
}

// ExerciseCategoryTokens returns every backend token for exercise categories.
func ExerciseCategoryTokens() []string { return exerciseCategories.tokens() }

// Backend returns the backend token, or "" for ExerciseUnspecified.
func (c ExerciseCategory) Backend() string { return exerciseCategories.backend(c) }

// Label returns the UI label.
func (c ExerciseCategory) Label() string { return exerciseCategories.label(c) }

func (c ExerciseCategory) String() string {
	if b := c.Backend(); b != "" {
		return b
	}
	return "UNSPECIFIED"
}

// ActivityLevel is the user's self-reported activity level.
type ActivityLevel int

const (
	ActivityUnspecified ActivityLevel = iota
	ActivitySedentary
	ActivityLight
	ActivityModerate
	ActivityActive
	ActivityVeryActive
)

var activityLevels = vocab[ActivityLevel]{
	field: "activity_level",
	entries: []vocabEntry[ActivityLevel]{
		{ActivityUnspecified, "", "未指定"},
		{ActivitySedentary, "sedentary", "久坐不动"},
		{ActivityLight, "light", "轻度活动"},
		{ActivityModerate, "moderate", "中度活动"},
		{ActivityActive, "active", "高度活动"},
		{ActivityVeryActive, "very_active", "非常活跃"},
	},
}

// ParseActivityLevel maps a backend token such as "moderate".
func ParseActivityLevel(token string) (ActivityLevel, error) {
	return activityLevels.parse(token)
}

// ActivityLevelFromLabel maps a UI label such as "中度活动".
func ActivityLevelFromLabel(label string) (ActivityLevel, error) {
	return activityLevels.fromLabel(label)
}

// ActivityLevelTokens returns every backend token for activity levels.
func ActivityLevelTokens() []string { return activityLevels.tokens() }

// Backend returns the backend token, or "" for ActivityUnspecified.
func (a ActivityLevel) Backend() string { return activityLevels.backend(a) }

// Label returns the UI label.
func (a ActivityLevel) Label() string { return activityLevels.label(a) }

// GoalType is the user's weight goal.
type GoalType int

const (
	GoalUnspecified GoalType = iota
	GoalLoseWeight
	GoalMaintain
	GoalGainMuscle
)

var goalTypes = vocab[GoalType]{
	field: "goal_type",
	entries: []vocabEntry[GoalType]{
		{GoalUnspecified, "", "未指定"},
		{GoalLoseWeight, "lose_weight", "减重"},
		{GoalMaintain, "maintain", "保持体重"},
		{GoalGainMuscle, "gain_muscle", "增肌"},
	},
}

// ParseGoalType maps a backend token such as "lose_weight".
func ParseGoalType(token string) (GoalType, error) { return goalTypes.parse(token) }

// GoalTypeFromLabel maps a UI label such as "减重".
func GoalTypeFromLabel(label string) (GoalType, error) { return goalTypes.fromLabel(label) }

// GoalTypeTokens returns every backend token for goal types.
func GoalTypeTokens() []string { return goalTypes.tokens() }

// Backend returns the backend token, or "" for GoalUnspecified.
func (g GoalType) Backend() string { return goalTypes.backend(g) }

// Label returns the UI label.
func (g GoalType) Label() string { return goalTypes.label(g) }

// Gender as reported on the user profile.
type Gender int

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
)

var genders = vocab[Gender]{
	field: "gender",
	entries: []vocabEntry[Gender]{
		{GenderUnspecified, "", "未指定"},
		{GenderMale, "male", "男"},
		{GenderFemale, "female", "女"},
	},
}

// ParseGender maps a backend token such as "female".
func ParseGender(token string) (Gender, error) { return genders.parse(token) }

// GenderFromLabel maps a UI label such as "女".
func GenderFromLabel(label string) (Gender, error) { return genders.fromLabel(label) }

// GenderTokens returns every backend token for genders.
func GenderTokens() []string { return genders.tokens() }

// Backend returns the backend token, or "" for GenderUnspecified.
func (g Gender) Backend() string { return genders.backend(g) }

// Label returns the UI label.
func (g Gender) Label() string { return genders.label(g) }
