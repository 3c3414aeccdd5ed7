package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/config"
	"github.com/five82/fitlog/internal/logger"
	"github.com/five82/fitlog/internal/mets"
	"github.com/five82/fitlog/internal/model"
)

type ExerciseCmd struct {
	Add    ExerciseAddCmd    `cmd:"" help:"Record an exercise."`
	Delete ExerciseDeleteCmd `cmd:"" help:"Delete an exercise record."`
	Search ExerciseSearchCmd `cmd:"" help:"Search the sports catalogue."`
}

type ExerciseAddCmd struct {
	Name     string  `arg:"" help:"Exercise name."`
	Minutes  int     `short:"m" help:"Duration in minutes." required:""`
	Type     string  `short:"t" help:"Exercise type (CARDIO, STRENGTH, FLEXIBILITY, SPORTS, OTHER or its label)."`
	At       string  `help:"Record time (HH:MM or YYYY-MM-DDTHH:MM:SS); defaults to now."`
	Calories float64 `short:"c" help:"Calories burned; estimated from METs and body weight when omitted."`
	Notes    string  `help:"Free-form note."`
}

// Validate is called by kong after flags are parsed.
func (cmd *ExerciseAddCmd) Validate() error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("exercise name is required")
	}
	if cmd.Minutes <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	if cmd.Calories < 0 {
		return fmt.Errorf("calories must not be negative")
	}
	return nil
}

func (cmd *ExerciseAddCmd) Run(c *Context) error {
	cfg, backend, err := c.env()
	if err != nil {
		return err
	}
	at, err := parseAt(cmd.At, c.now())
	if err != nil {
		return err
	}
	category, err := parseCategory(cmd.Type)
	if err != nil {
		return err
	}
	ctx := c.context()
	name := strings.TrimSpace(cmd.Name)
	duration := time.Duration(cmd.Minutes) * time.Minute

	calories := cmd.Calories
	if calories == 0 {
		entry, err := lookupMETs(ctx, cfg, backend, name)
		if err != nil {
			return err
		}
		calories = mets.EstimateBurned(entry.Value, cfg.WeightKg, duration)
		if category == model.ExerciseUnspecified {
			category = entry.Category
		}
		logger.Debug("estimated calories", "exercise", name, "mets", entry.Value, "weight_kg", cfg.WeightKg, "kcal", calories)
	}

	rec, err := backend.AddExercise(ctx, api.ExerciseInput{
		ExerciseName:   name,
		ExerciseType:   category.Backend(),
		RecordTime:     at.Format(recordLayout),
		Duration:       float64(cmd.Minutes),
		CaloriesBurned: calories,
		Notes:          cmd.Notes,
	})
	if err != nil {
		return err
	}
	logger.Info("exercise added", "id", rec.ID, "name", name, "minutes", cmd.Minutes)
	c.printf("已记录 %s %d 分钟 消耗 %.0f kcal (id %s)\n", name, cmd.Minutes, calories, rec.ID)
	return nil
}

// lookupMETs checks the local table first, then the sports catalogue. Values
// found remotely are cached locally. Catalogue entries with an unknown
// exercise type are skipped. Auth and network failures are returned as is
// so the user is not told to pass --calories when the real problem is login.
func lookupMETs(ctx context.Context, cfg config.Config, backend api.Backend, name string) (mets.Entry, error) {
	table, err := mets.Open(ctx, cfg.METsDB)
	if err != nil {
		return mets.Entry{}, err
	}
	defer table.Close()

	entry, err := table.Lookup(ctx, name)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, mets.ErrNotFound) {
		return mets.Entry{}, err
	}

	sports, err := backend.SearchSports(ctx, name)
	if err != nil {
		if kind, ok := api.KindOf(err); ok && (kind == api.KindUnauthenticated || kind == api.KindNetwork) {
			return mets.Entry{}, fmt.Errorf("look up METs for %q: %w", name, err)
		}
		logger.Warn("sports search failed", "name", name, "error", err)
	}
	for _, s := range sports {
		if s.Name != name || s.METs <= 0 {
			continue
		}
		category := model.ExerciseUnspecified
		if strings.TrimSpace(s.ExerciseType) != "" {
			if category, err = model.ParseExerciseCategory(s.ExerciseType); err != nil {
				logger.Warn("skipping catalogue sport", "id", s.ID, "name", s.Name, "error", err)
				continue
			}
		}
		entry = mets.Entry{Name: s.Name, Category: category, Value: s.METs}
		if err := table.Upsert(ctx, entry); err != nil {
			logger.Warn("cache mets failed", "name", s.Name, "error", err)
		}
		return entry, nil
	}
	return mets.Entry{}, fmt.Errorf("no METs value for %q; pass --calories or add one with `fitlog mets set`", name)
}

type ExerciseDeleteCmd struct {
	ID string `arg:"" help:"Record id."`
}

func (cmd *ExerciseDeleteCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	if err := backend.DeleteExercise(c.context(), cmd.ID); err != nil {
		return err
	}
	logger.Info("exercise deleted", "id", cmd.ID)
	c.printf("已删除运动记录 %s\n", cmd.ID)
	return nil
}

type ExerciseSearchCmd struct {
	Keyword string `arg:"" help:"Name fragment to search for."`
}

func (cmd *ExerciseSearchCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	items, err := backend.SearchSports(c.context(), cmd.Keyword)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		c.printf("没有找到 %q\n", cmd.Keyword)
		return nil
	}
	for _, it := range items {
		label := it.ExerciseType
		if category, err := model.ParseExerciseCategory(it.ExerciseType); err == nil {
			label = category.Label()
		}
		c.printf("%-6s %-12s %5.1f METs  %s\n", it.ID, it.Name, it.METs, label)
	}
	return nil
}
