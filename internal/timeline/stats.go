package timeline

// Targets are the user's daily goals. Zero means no target.
type Targets struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Macro pairs a current amount with its target.
type Macro struct {
	Current float64
	Target  float64
	Unit    string
}

// Remaining returns Target-Current, or 0 when there is no target.
func (m Macro) Remaining() float64 {
	if m.Target <= 0 {
		return 0
	}
	return m.Target - m.Current
}

// Progress returns Current/Target, or 0 when there is no target.
func (m Macro) Progress() float64 {
	if m.Target <= 0 {
		return 0
	}
	return m.Current / m.Target
}

// DailyStats summarises a day's timeline. It is always derived, never stored.
type DailyStats struct {
	Calories Macro
	Protein  Macro
	Carbs    Macro
	Fat      Macro
	Burned   float64
}

// Net is intake minus burned calories.
func (s DailyStats) Net() float64 {
	return s.Calories.Current - s.Burned
}

// Stats derives the day's totals from tl.
func Stats(tl Timeline, targets Targets) DailyStats {
	s := DailyStats{
		Calories: Macro{Target: targets.Calories, Unit: "kcal"},
		Protein:  Macro{Target: targets.Protein, Unit: "g"},
		Carbs:    Macro{Target: targets.Carbs, Unit: "g"},
		Fat:      Macro{Target: targets.Fat, Unit: "g"},
	}
	for _, e := range tl {
		switch {
		case e.Meal != nil:
			t := e.Meal.Totals()
			s.Calories.Current += t.Calories
			s.Protein.Current += t.Protein
			s.Carbs.Current += t.Carbs
			s.Fat.Current += t.Fat
		case e.Workout != nil:
			s.Burned += e.Workout.Totals().CaloriesBurned
		}
	}
	return s
}
