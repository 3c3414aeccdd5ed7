package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/model"
	"github.com/five82/fitlog/internal/prefs"
	"github.com/five82/fitlog/internal/state"
	"github.com/five82/fitlog/internal/timeline"
)

var day = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

func sampleTimeline() timeline.Timeline {
	tl, _ := timeline.Aggregate(
		[]api.FoodRecord{{
			ID: "1", FoodName: "燕麦粥", MealType: "breakfast", RecordTime: "2024-01-01T08:00:00",
			Calories: ptr(300), Protein: ptr(10), Carbs: ptr(50), Fat: ptr(5),
		}},
		[]api.ExerciseRecord{{
			ID: "e1", ExerciseName: "慢跑", ExerciseType: "CARDIO", RecordTime: "2024-01-01T18:00:00",
			Duration: ptr(30), CaloriesBurned: ptr(250),
		}},
	)
	return tl
}

func ptr(v float64) *float64 { return &v }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *state.Store, *int) {
	t.Helper()
	store := &state.Store{}
	store.SetDate(day)
	tl := sampleTimeline()
	store.Update(day, tl, timeline.Stats(tl, timeline.Targets{Calories: 2000}), nil, nil)

	triggers := 0
	m := New(Options{Store: store, Trigger: func() { triggers++ }})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), store, &triggers
}

func TestModel_DayNavigationTriggersRefresh(t *testing.T) {
	m, store, triggers := newTestModel(t)

	updated, _ := m.Update(keyMsg("left"))
	m = updated.(Model)
	if !store.Date().Equal(day.AddDate(0, 0, -1)) {
		t.Fatalf("Date = %v after left", store.Date())
	}
	if *triggers != 1 {
		t.Fatalf("triggers = %d, want 1", *triggers)
	}

	updated, _ = m.Update(keyMsg("right"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("right"))
	_ = updated.(Model)
	if !store.Date().Equal(day.AddDate(0, 0, 1)) {
		t.Fatalf("Date = %v after two rights", store.Date())
	}
	if *triggers != 3 {
		t.Fatalf("triggers = %d, want 3", *triggers)
	}
}

func TestModel_RefreshAndQuit(t *testing.T) {
	m, _, triggers := newTestModel(t)

	updated, _ := m.Update(keyMsg("r"))
	m = updated.(Model)
	if *triggers != 1 {
		t.Fatalf("refresh key did not trigger")
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("quit key returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit key did not produce QuitMsg")
	}
}

func TestModel_ViewShowsDay(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(tickMsg(time.Now()))
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"fitlog", "2024-01-01", "燕麦粥", "慢跑", "300"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	short := m.View()
	updated, _ := m.Update(keyMsg("?"))
	m = updated.(Model)
	if !m.help.ShowAll {
		t.Fatalf("help not expanded")
	}
	if m.View() == short {
		t.Fatalf("view unchanged after toggling help")
	}
}

func TestRenderNotices(t *testing.T) {
	s := GetTheme("").Styles()
	v := DayView{
		LastError: &api.Error{Kind: api.KindUnauthenticated, Message: "not logged in"},
		Skipped:   []error{&model.DecodeError{Kind: "food", RecordID: "7", Field: "meal_type", Value: "brunch", Err: model.ErrUnknownValue}},
	}
	out := RenderNotices(v, s)
	if !strings.Contains(out, "Please log in again") {
		t.Fatalf("missing auth notice: %q", out)
	}
	if !strings.Contains(out, "1 条记录") || !strings.Contains(out, "brunch") {
		t.Fatalf("missing skipped notice: %q", out)
	}
	if RenderNotices(DayView{}, s) != "" {
		t.Fatalf("expected no notices for a clean day")
	}
}

func TestRenderTimeline_Empty(t *testing.T) {
	out := RenderTimeline(nil, GetTheme("Slate").Styles())
	if !strings.Contains(out, "没有记录") {
		t.Fatalf("unexpected empty render: %q", out)
	}
}

func TestNextTheme(t *testing.T) {
	if NextTheme("Dracula") != "Slate" || NextTheme("Slate") != "Dracula" || NextTheme("nope") != "Dracula" {
		t.Fatalf("unexpected theme cycle")
	}
}

func TestModel_ThemeAndHelpArePersisted(t *testing.T) {
	store := &state.Store{}
	store.SetDate(day)
	var saved []prefs.Prefs
	m := New(Options{
		Store:     store,
		Prefs:     prefs.Prefs{Theme: "Slate", FullHelp: true},
		SavePrefs: func(p prefs.Prefs) { saved = append(saved, p) },
	})
	if m.theme.Name != "Slate" || !m.help.ShowAll {
		t.Fatalf("initial prefs not applied: theme=%s full=%v", m.theme.Name, m.help.ShowAll)
	}

	updated, _ := m.Update(keyMsg("T"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("?"))
	_ = updated.(Model)

	if len(saved) != 2 {
		t.Fatalf("saved %d times, want 2", len(saved))
	}
	if saved[0] != (prefs.Prefs{Theme: "Dracula", FullHelp: true}) {
		t.Fatalf("after theme toggle saved %+v", saved[0])
	}
	if saved[1] != (prefs.Prefs{Theme: "Dracula", FullHelp: false}) {
		t.Fatalf("after help toggle saved %+v", saved[1])
	}
}
