// Package fake provides an in-memory api.Backend for tests and demo mode.
package fake

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/auth"
)

// Backend is a synchronous, deterministic api.Backend. It enforces the same
// token rules as the real client: authenticated calls fail with
// api.KindUnauthenticated when the token store is empty.
type Backend struct {
	tokens auth.TokenStore

	mu        sync.Mutex
	nextID    int
	users     map[string]string
	profile   api.Profile
	foods     []api.FoodRecord
	exercises []api.ExerciseRecord
	catalog   []api.FoodItem
	sports    []api.SportItem
	recipes   []api.Recipe
	failWith  error
	calls     map[string]int
}

var _ api.Backend = (*Backend)(nil)

// New returns an empty fake bound to tokens.
func New(tokens auth.TokenStore) *Backend {
	if tokens == nil {
		tokens = &auth.MemoryStore{}
	}
	return &Backend{
		tokens: tokens,
		nextID: 1000,
		users:  map[string]string{},
		profile: api.Profile{
			ID:       "u-demo",
			Username: "demo",
		},
		calls: map[string]int{},
	}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (b *Backend) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWith = err
}

// Calls reports how many times the named method ran.
func (b *Backend) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method]
}

// SetProfile replaces the stored profile.
func (b *Backend) SetProfile(p api.Profile) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profile = p
}

// AddUser registers credentials accepted by Login.
func (b *Backend) AddUser(username, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = password
}

// SeedFoods appends raw food records as the backend would return them.
func (b *Backend) SeedFoods(records ...api.FoodRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.foods = append(b.foods, records...)
}

// SeedExercises appends raw exercise records.
func (b *Backend) SeedExercises(records ...api.ExerciseRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exercises = append(b.exercises, records...)
}

// SeedCatalog sets the searchable foods, sports and recipes.
func (b *Backend) SeedCatalog(foods []api.FoodItem, sports []api.SportItem, recipes []api.Recipe) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.catalog = append(b.catalog, foods...)
	b.sports = append(b.sports, sports...)
	b.recipes = append(b.recipes, recipes...)
}

// enter records the call and applies failure injection and the token rule.
// The caller must hold b.mu.
func (b *Backend) enter(ctx context.Context, method string, needsAuth bool) error {
	b.calls[method]++
	if err := ctx.Err(); err != nil {
		return &api.Error{Kind: api.KindNetwork, Message: "request cancelled", Err: err}
	}
	if b.failWith != nil {
		return b.failWith
	}
	if !needsAuth {
		return nil
	}
	token, err := b.tokens.Get()
	if err != nil {
		return &api.Error{Kind: api.KindUnauthenticated, Message: "stored credential unavailable", Err: err}
	}
	if token == "" {
		return &api.Error{Kind: api.KindUnauthenticated, Message: "not logged in"}
	}
	return nil
}

func (b *Backend) newID() api.ID {
	b.nextID++
	return api.ID(strconv.Itoa(b.nextID))
}

func (b *Backend) Login(ctx context.Context, username, password string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "Login", false); err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	if want, ok := b.users[username]; ok && want != password {
		return &api.Error{Kind: api.KindUnauthenticated, Status: 401, Message: "Incorrect username or password"}
	}
	return b.tokens.Save("fake-token-" + username)
}

func (b *Backend) Register(ctx context.Context, req api.RegisterRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "Register", false); err != nil {
		return err
	}
	username := strings.TrimSpace(req.Username)
	if _, exists := b.users[username]; exists {
		return &api.Error{Kind: api.KindClientError, Status: 409, Message: "username already registered"}
	}
	b.users[username] = req.Password
	b.profile.Username = username
	return b.tokens.Save("fake-token-" + username)
}

func (b *Backend) RefreshToken(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "RefreshToken", true); err != nil {
		return err
	}
	current, _ := b.tokens.Get()
	return b.tokens.Save(current + "+r")
}

func (b *Backend) Logout() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["Logout"]++
	return b.tokens.Clear()
}

func (b *Backend) Profile(ctx context.Context) (api.Profile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "Profile", true); err != nil {
		return api.Profile{}, err
	}
	return b.profile, nil
}

func (b *Backend) FoodRecords(ctx context.Context, day time.Time) ([]api.FoodRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "FoodRecords", true); err != nil {
		return nil, err
	}
	var out []api.FoodRecord
	for _, r := range b.foods {
		if onDay(r.RecordTime, r.CreatedAt, day) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (b *Backend) AddFood(ctx context.Context, in api.FoodInput) (api.FoodRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "AddFood", true); err != nil {
		return api.FoodRecord{}, err
	}
	rec := api.FoodRecord{
		ID:         b.newID(),
		FoodName:   in.FoodName,
		MealType:   in.MealType,
		RecordTime: in.RecordTime,
		Amount:     ptr(in.Amount),
		Unit:       in.Unit,
		Calories:   ptr(in.Calories),
		Protein:    ptr(in.Protein),
		Carbs:      ptr(in.Carbs),
		Fat:        ptr(in.Fat),
		Fiber:      in.Fiber,
		Notes:      in.Notes,
	}
	b.foods = append(b.foods, rec)
	return rec, nil
}

func (b *Backend) DeleteFood(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "DeleteFood", true); err != nil {
		return err
	}
	for i, r := range b.foods {
		if string(r.ID) == id {
			b.foods = append(b.foods[:i], b.foods[i+1:]...)
			return nil
		}
	}
	return notFound("food record", id)
}

func (b *Backend) SearchFoods(ctx context.Context, keyword string) ([]api.FoodItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "SearchFoods", true); err != nil {
		return nil, err
	}
	var out []api.FoodItem
	for _, f := range b.catalog {
		if matches(f.Name, keyword) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (b *Backend) ExerciseRecords(ctx context.Context, day time.Time) ([]api.ExerciseRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "ExerciseRecords", true); err != nil {
		return nil, err
	}
	var out []api.ExerciseRecord
	for _, r := range b.exercises {
		if onDay(r.RecordTime, r.CreatedAt, day) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (b *Backend) AddExercise(ctx context.Context, in api.ExerciseInput) (api.ExerciseRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "AddExercise", true); err != nil {
		return api.ExerciseRecord{}, err
	}
	rec := api.ExerciseRecord{
		ID:             b.newID(),
		ExerciseName:   in.ExerciseName,
		ExerciseType:   in.ExerciseType,
		RecordTime:     in.RecordTime,
		Duration:       ptr(in.Duration),
		CaloriesBurned: ptr(in.CaloriesBurned),
		Notes:          in.Notes,
	}
	b.exercises = append(b.exercises, rec)
	return rec, nil
}

func (b *Backend) DeleteExercise(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "DeleteExercise", true); err != nil {
		return err
	}
	for i, r := range b.exercises {
		if string(r.ID) == id {
			b.exercises = append(b.exercises[:i], b.exercises[i+1:]...)
			return nil
		}
	}
	return notFound("exercise record", id)
}

func (b *Backend) SearchSports(ctx context.Context, keyword string) ([]api.SportItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "SearchSports", true); err != nil {
		return nil, err
	}
	var out []api.SportItem
	for _, s := range b.sports {
		if matches(s.Name, keyword) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (b *Backend) SearchRecipes(ctx context.Context, keyword string) ([]api.Recipe, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "SearchRecipes", true); err != nil {
		return nil, err
	}
	var out []api.Recipe
	for _, r := range b.recipes {
		if matches(r.Name, keyword) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (b *Backend) Recipe(ctx context.Context, id string) (api.Recipe, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "Recipe", true); err != nil {
		return api.Recipe{}, err
	}
	for _, r := range b.recipes {
		if string(r.ID) == id {
			return r, nil
		}
	}
	return api.Recipe{}, notFound("recipe", id)
}

func (b *Backend) DailySummary(ctx context.Context, day time.Time) (api.DailySummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "DailySummary", true); err != nil {
		return api.DailySummary{}, err
	}
	sum := api.DailySummary{Date: day.Format(api.DateLayout)}
	for _, r := range b.foods {
		if !onDay(r.RecordTime, r.CreatedAt, day) {
			continue
		}
		sum.TotalCalories += deref(r.Calories)
		sum.TotalProtein += deref(r.Protein)
		sum.TotalCarbs += deref(r.Carbs)
		sum.TotalFat += deref(r.Fat)
	}
	for _, r := range b.exercises {
		if onDay(r.RecordTime, r.CreatedAt, day) {
			sum.CaloriesBurned += deref(r.CaloriesBurned)
		}
	}
	sum.TargetCalories = deref(b.profile.DailyCalorieTarget)
	return sum, nil
}

func (b *Backend) Suggest(ctx context.Context, req api.SuggestionRequest) (api.Suggestion, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, "Suggest", true); err != nil {
		return api.Suggestion{}, err
	}
	switch req.Type {
	case api.SuggestDiet:
		return api.Suggestion{Type: req.Type, Suggestion: "Add a serving of vegetables to dinner and keep snacks under 200 kcal."}, nil
	case api.SuggestExercise:
		return api.Suggestion{Type: req.Type, Suggestion: "A 30 minute brisk walk closes most of today's calorie gap."}, nil
	default:
		return api.Suggestion{}, &api.Error{Kind: api.KindClientError, Message: fmt.Sprintf("unknown suggestion type %q", req.Type)}
	}
}

func onDay(recordTime, createdAt string, day time.Time) bool {
	if day.IsZero() {
		return true
	}
	ts := recordTime
	if strings.TrimSpace(ts) == "" {
		ts = createdAt
	}
	return strings.HasPrefix(strings.TrimSpace(ts), day.Format(api.DateLayout))
}

func matches(name, keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	return kw == "" || strings.Contains(strings.ToLower(name), kw)
}

func notFound(what, id string) error {
	return &api.Error{Kind: api.KindClientError, Status: 404, Message: fmt.Sprintf("%s %s not found", what, id)}
}

func ptr(v float64) *float64 {
	return &v
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
