package app

import (
	"context"
	"testing"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/api/fake"
	"github.com/five82/fitlog/internal/auth"
	"github.com/five82/fitlog/internal/config"
)

func TestResolveTargets_ProfileOverridesCalories(t *testing.T) {
	cfg := config.Default()
	cfg.Targets.Calories = 1800

	tokens := &auth.MemoryStore{}
	if err := tokens.Save("t"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	backend := fake.New(tokens)
	target := 2300.0
	backend.SetProfile(api.Profile{ID: "u1", Username: "alice", DailyCalorieTarget: &target})

	got := ResolveTargets(context.Background(), backend, cfg)
	if got.Calories != 2300 {
		t.Fatalf("Calories = %v, want profile target 2300", got.Calories)
	}
	if got.Protein != cfg.Targets.Protein || got.Fat != cfg.Targets.Fat {
		t.Fatalf("macro targets changed: %+v", got)
	}
}

func TestResolveTargets_FallsBackToConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Targets.Calories = 1800

	// Not logged in: the profile call fails.
	if got := ResolveTargets(context.Background(), fake.New(nil), cfg); got != TargetsFrom(cfg) {
		t.Fatalf("ResolveTargets without login = %+v, want %+v", got, TargetsFrom(cfg))
	}

	tokens := &auth.MemoryStore{}
	if err := tokens.Save("t"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	backend := fake.New(tokens)
	backend.SetProfile(api.Profile{ID: "u1", Username: "alice"})
	if got := ResolveTargets(context.Background(), backend, cfg); got.Calories != 1800 {
		t.Fatalf("Calories = %v, want configured 1800 when profile has no target", got.Calories)
	}
}
