package cli

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/api/fake"
	"github.com/five82/fitlog/internal/auth"
	"github.com/five82/fitlog/internal/config"
	"github.com/five82/fitlog/internal/mets"
	"github.com/five82/fitlog/internal/model"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.LogDir = filepath.Join(dir, "logs")
	cfg.METsDB = filepath.Join(dir, "mets.db")
	cfg.WeightKg = 60
	return cfg
}

func newContext(t *testing.T, backend api.Backend) (*Context, *bytes.Buffer, config.Config) {
	t.Helper()
	cfg := testConfig(t)
	var out bytes.Buffer
	c := &Context{
		Ctx: context.Background(),
		Out: &out,
		Setup: func(Globals) (config.Config, api.Backend, error) {
			return cfg, backend, nil
		},
		Now: func() time.Time { return now },
	}
	return c, &out, cfg
}

func loggedIn(t *testing.T) (*fake.Backend, *auth.MemoryStore) {
	t.Helper()
	tokens := &auth.MemoryStore{}
	if err := tokens.Save("t"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return fake.New(tokens), tokens
}

type stubPrompter struct {
	creds Credentials
	calls int
}

func (s *stubPrompter) Credentials(c *Credentials, register bool) error {
	s.calls++
	if c.Username == "" {
		c.Username = s.creds.Username
	}
	if c.Password == "" {
		c.Password = s.creds.Password
	}
	return nil
}

func TestTodayCmd_RendersDay(t *testing.T) {
	c, out, _ := newContext(t, fake.NewDemo(&auth.MemoryStore{}, now))

	if err := (&TodayCmd{Date: "today", Summary: true}).Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"2024-03-10", "燕麦粥", "清蒸鱼", "慢跑", "服务器汇总 2024-03-10"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTodayCmd_Unauthenticated(t *testing.T) {
	c, _, _ := newContext(t, fake.New(nil))
	err := (&TodayCmd{Date: "today"}).Run(c)
	if !api.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}

func TestFoodAddCmd_DerivesCaloriesAndMeal(t *testing.T) {
	backend, _ := loggedIn(t)
	c, out, _ := newContext(t, backend)

	cmd := &FoodAddCmd{Name: " 酸奶 ", At: "08:30", Amount: 150, Unit: "g", Protein: 10, Carbs: 20, Fat: 5}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := cmd.Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}

	records, err := backend.FoodRecords(context.Background(), now)
	if err != nil {
		t.Fatalf("FoodRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.FoodName != "酸奶" || r.MealType != "breakfast" || r.RecordTime != "2024-03-10T08:30:00" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.Calories == nil || *r.Calories != 165 {
		t.Fatalf("calories = %v, want 165", r.Calories)
	}
	if !strings.Contains(out.String(), "早餐") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestFoodAddCmd_Validate(t *testing.T) {
	if err := (&FoodAddCmd{Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := (&FoodAddCmd{Name: "x", Fat: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative fat")
	}
}

func TestFoodDeleteCmd_NotFound(t *testing.T) {
	backend, _ := loggedIn(t)
	c, _, _ := newContext(t, backend)

	err := (&FoodDeleteCmd{ID: "404"}).Run(c)
	kind, ok := api.KindOf(err)
	if !ok || kind != api.KindClientError {
		t.Fatalf("expected client error, got %v", err)
	}
}

func TestFoodSearchCmd(t *testing.T) {
	c, out, _ := newContext(t, fake.NewDemo(&auth.MemoryStore{}, now))
	if err := (&FoodSearchCmd{Keyword: "鸡"}).Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "鸡胸肉") || strings.Contains(out.String(), "米饭") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestExerciseAddCmd_EstimatesFromLocalMETs(t *testing.T) {
	backend, _ := loggedIn(t)
	c, _, _ := newContext(t, backend)

	if err := (&ExerciseAddCmd{Name: "跑步", Minutes: 30, At: "07:00"}).Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	records, _ := backend.ExerciseRecords(context.Background(), now)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.ExerciseType != "CARDIO" {
		t.Fatalf("exercise type = %q, want CARDIO", r.ExerciseType)
	}
	if r.CaloriesBurned == nil || math.Abs(*r.CaloriesBurned-294) > 1e-6 {
		t.Fatalf("calories burned = %v, want 294", r.CaloriesBurned)
	}
	if backend.Calls("SearchSports") != 0 {
		t.Fatalf("local hit should not search the catalogue")
	}
}

func TestExerciseAddCmd_CachesCatalogueMETs(t *testing.T) {
	backend, _ := loggedIn(t)
	backend.SeedCatalog(nil, []api.SportItem{{ID: "s9", Name: "划船", ExerciseType: "CARDIO", METs: 7}}, nil)
	c, _, cfg := newContext(t, backend)

	if err := (&ExerciseAddCmd{Name: "划船", Minutes: 60, Type: "有氧运动"}).Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	records, _ := backend.ExerciseRecords(context.Background(), now)
	if len(records) != 1 || records[0].CaloriesBurned == nil || *records[0].CaloriesBurned != 420 {
		t.Fatalf("unexpected records: %+v", records)
	}

	table, err := mets.Open(context.Background(), cfg.METsDB)
	if err != nil {
		t.Fatalf("mets.Open: %v", err)
	}
	defer table.Close()
	e, err := table.Lookup(context.Background(), "划船")
	if err != nil || e.Value != 7 || e.Category != model.ExerciseCardio {
		t.Fatalf("catalogue value not cached: %+v, %v", e, err)
	}
}

func TestExerciseAddCmd_UnknownActivityNeedsCalories(t *testing.T) {
	backend, _ := loggedIn(t)
	c, _, _ := newContext(t, backend)

	err := (&ExerciseAddCmd{Name: "冲浪", Minutes: 45}).Run(c)
	if err == nil || !strings.Contains(err.Error(), "--calories") {
		t.Fatalf("expected hint about --calories, got %v", err)
	}
	if err := (&ExerciseAddCmd{Name: "冲浪", Minutes: 45, Calories: 300}).Run(c); err != nil {
		t.Fatalf("explicit calories: %v", err)
	}
}

func TestExerciseAddCmd_CatalogueAuthAndNetworkErrorsSurface(t *testing.T) {
	backend := fake.New(nil)
	c, _, _ := newContext(t, backend)

	err := (&ExerciseAddCmd{Name: "冲浪", Minutes: 45}).Run(c)
	if !api.IsUnauthenticated(err) {
		t.Fatalf("error = %v, want unauthenticated", err)
	}
	if strings.Contains(err.Error(), "--calories") {
		t.Fatalf("auth failure reported as missing METs: %v", err)
	}
	if backend.Calls("AddExercise") != 0 {
		t.Fatalf("AddExercise called after failed lookup")
	}

	backend, _ = loggedIn(t)
	backend.FailWith(&api.Error{Kind: api.KindNetwork, Message: "connection refused"})
	c, _, _ = newContext(t, backend)
	err = (&ExerciseAddCmd{Name: "冲浪", Minutes: 45}).Run(c)
	if kind, ok := api.KindOf(err); !ok || kind != api.KindNetwork {
		t.Fatalf("error = %v, want network error", err)
	}
}

func TestExerciseAddCmd_CatalogueServerErrorFallsBackToHint(t *testing.T) {
	backend, _ := loggedIn(t)
	backend.FailWith(&api.Error{Kind: api.KindServerError, Status: 500, Message: "boom"})
	c, _, _ := newContext(t, backend)

	err := (&ExerciseAddCmd{Name: "冲浪", Minutes: 45}).Run(c)
	if err == nil || !strings.Contains(err.Error(), "--calories") {
		t.Fatalf("expected hint about --calories, got %v", err)
	}
}

func TestExerciseAddCmd_SkipsUnknownCatalogueType(t *testing.T) {
	backend, _ := loggedIn(t)
	backend.SeedCatalog(nil, []api.SportItem{{ID: "s3", Name: "划船", ExerciseType: "AEROBIC", METs: 7}}, nil)
	c, _, cfg := newContext(t, backend)

	err := (&ExerciseAddCmd{Name: "划船", Minutes: 60}).Run(c)
	if err == nil || !strings.Contains(err.Error(), "--calories") {
		t.Fatalf("expected hint about --calories, got %v", err)
	}
	if backend.Calls("AddExercise") != 0 {
		t.Fatalf("exercise recorded from an unusable catalogue entry")
	}

	table, err := mets.Open(context.Background(), cfg.METsDB)
	if err != nil {
		t.Fatalf("mets.Open: %v", err)
	}
	defer table.Close()
	if _, err := table.Lookup(context.Background(), "划船"); !errors.Is(err, mets.ErrNotFound) {
		t.Fatalf("Lookup = %v, want ErrNotFound", err)
	}
}

func TestLoginCmd_PromptsForMissingFields(t *testing.T) {
	tokens := &auth.MemoryStore{}
	backend := fake.New(tokens)
	backend.AddUser("amy", "secret")
	c, out, _ := newContext(t, backend)
	prompter := &stubPrompter{creds: Credentials{Password: "secret"}}
	c.Prompter = prompter

	if err := (&LoginCmd{Username: "amy"}).Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if prompter.calls != 1 {
		t.Fatalf("prompter called %d times, want 1", prompter.calls)
	}
	if token, _ := tokens.Get(); token != "fake-token-amy" {
		t.Fatalf("token = %q", token)
	}
	if !strings.Contains(out.String(), "amy") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestLoginCmd_WithoutPrompter(t *testing.T) {
	c, _, _ := newContext(t, fake.New(nil))
	if err := (&LoginCmd{Username: "amy"}).Run(c); err == nil {
		t.Fatalf("expected error without password or prompter")
	}
}

func TestLoginCmd_WrongPassword(t *testing.T) {
	backend := fake.New(nil)
	backend.AddUser("amy", "secret")
	c, _, _ := newContext(t, backend)
	err := (&LoginCmd{Username: "amy", Password: "nope"}).Run(c)
	if !api.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestRegisterAndLogout(t *testing.T) {
	tokens := &auth.MemoryStore{}
	c, _, _ := newContext(t, fake.New(tokens))

	if err := (&RegisterCmd{Username: "bo", Password: "pw", Email: "bo@example.com"}).Run(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token, _ := tokens.Get(); token != "fake-token-bo" {
		t.Fatalf("token after register = %q", token)
	}
	if err := (&LogoutCmd{}).Run(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if token, _ := tokens.Get(); token != "" {
		t.Fatalf("token after logout = %q", token)
	}
}

func TestRecipeCommands(t *testing.T) {
	c, out, _ := newContext(t, fake.NewDemo(&auth.MemoryStore{}, now))

	if err := (&RecipeSearchCmd{Keyword: "番茄"}).Run(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out.String(), "r1") {
		t.Fatalf("search output missing id:\n%s", out.String())
	}
	out.Reset()

	if err := (&RecipeShowCmd{ID: "r1"}).Run(c); err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"番茄炒蛋", "2 份", "鸡蛋 3个", "1. 鸡蛋打散炒熟盛出", "家常"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("show output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSuggestCmd(t *testing.T) {
	c, out, _ := newContext(t, fake.NewDemo(&auth.MemoryStore{}, now))
	if err := (&SuggestCmd{Type: api.SuggestExercise, Date: "today"}).Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "walk") {
		t.Fatalf("unexpected suggestion: %q", out.String())
	}
}

func TestMetsCommands(t *testing.T) {
	c, out, _ := newContext(t, fake.New(nil))

	if err := (&MetsSetCmd{Name: "划船", Value: 7, Type: "cardio"}).Run(c); err != nil {
		t.Fatalf("set: %v", err)
	}
	out.Reset()
	if err := (&MetsShowCmd{Name: "划船", Minutes: 30}).Run(c); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "≈ 210 kcal") {
		t.Fatalf("unexpected estimate:\n%s", out.String())
	}
	out.Reset()
	if err := (&MetsListCmd{Filter: "球"}).Run(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "篮球") || strings.Contains(out.String(), "划船") {
		t.Fatalf("unexpected list:\n%s", out.String())
	}
}

func TestLogsCmd_FiltersByLevel(t *testing.T) {
	c, out, cfg := newContext(t, fake.New(nil))
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := strings.Join([]string{
		"2024-03-10 08:00:00 INFO fitlog: refreshed day",
		"2024-03-10 08:00:01 WARN fitlog: skipped record id=7",
		"2024-03-10 08:00:02 DEBU fitlog: request path=/api/food/records",
	}, "\n") + "\n"
	if err := os.WriteFile(cfg.LogPath(), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := (&LogsCmd{Lines: 10, Level: "warn", NoColor: true}).Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "skipped record") || strings.Contains(got, "refreshed day") {
		t.Fatalf("unexpected logs:\n%s", got)
	}
}

func TestLogsCmd_MissingFile(t *testing.T) {
	c, out, _ := newContext(t, fake.New(nil))
	if err := (&LogsCmd{Lines: 10}).Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "暂无日志") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestParseHelpers(t *testing.T) {
	day, err := parseDay("yesterday", now)
	if err != nil || day.Day() != 9 {
		t.Fatalf("parseDay(yesterday) = %v, %v", day, err)
	}
	if _, err := parseDay("10/03/2024", now); err == nil {
		t.Fatalf("expected error for bad date")
	}

	at, err := parseAt("19:15", now)
	if err != nil || at.Hour() != 19 || at.Minute() != 15 || at.Day() != 10 {
		t.Fatalf("parseAt(19:15) = %v, %v", at, err)
	}

	at, err = parseAt("2024-03-10T08:00:00Z", now)
	want := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC).In(time.Local)
	if err != nil || !at.Equal(want) || at.Location() != time.Local {
		t.Fatalf("parseAt(zoned) = %v, %v; want %v", at, err, want)
	}
	if got := at.Format(recordLayout); got != want.Format(recordLayout) {
		t.Fatalf("record time = %q, want local wall clock %q", got, want.Format(recordLayout))
	}

	meals := []struct {
		in   string
		hour int
		want model.MealType
	}{
		{"", 7, model.MealBreakfast},
		{"", 12, model.MealLunch},
		{"", 19, model.MealDinner},
		{"", 23, model.MealSnack},
		{"Dinner", 8, model.MealDinner},
		{"加餐", 8, model.MealSnack},
	}
	for _, tt := range meals {
		got, err := parseMeal(tt.in, time.Date(2024, 3, 10, tt.hour, 0, 0, 0, time.Local))
		if err != nil || got != tt.want {
			t.Fatalf("parseMeal(%q, %d) = %v, %v; want %v", tt.in, tt.hour, got, err, tt.want)
		}
	}
	if _, err := parseMeal("brunch", now); err == nil {
		t.Fatalf("expected error for unknown meal")
	}
	if c, err := parseCategory("strength"); err != nil || c != model.ExerciseStrength {
		t.Fatalf("parseCategory(strength) = %v, %v", c, err)
	}
}
