package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/api/fake"
	"github.com/five82/fitlog/internal/auth"
	"github.com/five82/fitlog/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 80; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCalculateBackoff_LongIntervalNotShortened(t *testing.T) {
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Fatalf("calculateBackoff(3, 1m) = %v, want 1m", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestPoller_PopulatesStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	day := time.Now()
	backend := fake.NewDemo(&auth.MemoryStore{}, day)
	store := &state.Store{}
	store.SetDate(day)

	StartPoller(ctx, &Refresher{Backend: backend, Store: store}, time.Hour)
	waitFor(t, func() bool { return store.Snapshot().HasData })

	if n := len(store.Snapshot().Timeline); n == 0 {
		t.Fatalf("expected demo timeline entries")
	}
}

func TestPoller_PausesOnUnauthenticated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens := &auth.MemoryStore{}
	backend := fake.New(tokens)
	store := &state.Store{}
	store.SetDate(time.Now())

	p := StartPoller(ctx, &Refresher{Backend: backend, Store: store}, 10*time.Millisecond)
	waitFor(t, func() bool { return store.Snapshot().NeedsLogin() })

	// Paused: no further calls even though the interval is short.
	calls := backend.Calls("FoodRecords")
	time.Sleep(100 * time.Millisecond)
	if got := backend.Calls("FoodRecords"); got != calls {
		t.Fatalf("poller kept calling after 401: %d -> %d", calls, got)
	}

	if err := backend.Login(ctx, "demo", ""); err != nil {
		t.Fatalf("Login: %v", err)
	}
	p.Trigger()
	waitFor(t, func() bool { return store.Snapshot().HasData })
	if store.Snapshot().LastError != nil {
		t.Fatalf("LastError = %v after successful refresh", store.Snapshot().LastError)
	}
}

func TestRefresher_KeepsDataOnFailure(t *testing.T) {
	day := time.Now()
	backend := fake.NewDemo(&auth.MemoryStore{}, day)
	store := &state.Store{}
	store.SetDate(day)
	r := &Refresher{Backend: backend, Store: store}

	if err := r.Refresh(context.Background(), day); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	before := store.Snapshot()

	backend.FailWith(&api.Error{Kind: api.KindNetwork, Message: "network unavailable"})
	err := r.Refresh(context.Background(), day)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}

	after := store.Snapshot()
	if len(after.Timeline) != len(before.Timeline) || after.Stats != before.Stats {
		t.Fatalf("data changed after failed refresh")
	}
	if after.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d", after.ConsecutiveFailures)
	}
}

func TestRefresher_ReportsSkippedRecords(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	backend := fake.New(nil)
	_ = backend.Login(context.Background(), "demo", "")
	cal := func(v float64) *float64 { return &v }
	backend.SeedFoods(
		api.FoodRecord{ID: "1", MealType: "breakfast", RecordTime: "2024-01-01T08:00:00", Calories: cal(300)},
		api.FoodRecord{ID: "2", MealType: "brunch", RecordTime: "2024-01-01T10:00:00", Calories: cal(500)},
	)

	r := &Refresher{Backend: backend, Store: &state.Store{}}
	d, err := r.Load(context.Background(), day)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Skipped) != 1 || len(d.Timeline) != 1 {
		t.Fatalf("expected 1 entry and 1 skipped, got %d and %d", len(d.Timeline), len(d.Skipped))
	}
	if d.Stats.Calories.Current != 300 {
		t.Fatalf("calories = %v, want 300", d.Stats.Calories.Current)
	}
}
