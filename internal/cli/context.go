// Package cli implements the fitlog commands bound by kong in cmd/fitlog.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/config"
	"github.com/five82/fitlog/internal/model"
	"github.com/five82/fitlog/internal/normalize"
)

// recordLayout is the zone-less timestamp format the backend expects.
const recordLayout = "2006-01-02T15:04:05"

// Globals are the flags shared by every command.
type Globals struct {
	Config string `help:"Config file path." type:"path" placeholder:"PATH"`
	Demo   bool   `help:"Use the built-in demo backend instead of the server."`
	Debug  bool   `help:"Mirror debug logs to stderr."`
}

// SetupFunc loads configuration and builds the backend.
type SetupFunc func(g Globals) (config.Config, api.Backend, error)

// Context is bound into every command's Run method.
type Context struct {
	Ctx      context.Context
	Globals  Globals
	Out      io.Writer
	Prompter Prompter
	Setup    SetupFunc
	Now      func() time.Time

	once    sync.Once
	cfg     config.Config
	backend api.Backend
	err     error
}

// env runs Setup once per invocation.
func (c *Context) env() (config.Config, api.Backend, error) {
	c.once.Do(func() {
		if c.Setup == nil {
			c.err = fmt.Errorf("no backend configured")
			return
		}
		c.cfg, c.backend, c.err = c.Setup(c.Globals)
	})
	return c.cfg, c.backend, c.err
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// parseDay accepts "", "today", "yesterday" or a YYYY-MM-DD date.
func parseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	day, err := time.ParseInLocation(api.DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return day, nil
}

// parseAt accepts "" (now), a clock time "HH:MM" on now's date, or any full
// timestamp normalize understands. Full timestamps are returned in local time.
func parseAt(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if clock, err := time.Parse("15:04", s); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
	}
	t, err := normalize.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want HH:MM or YYYY-MM-DDTHH:MM:SS)", s)
	}
	// recordLayout drops the zone, so zoned input must be shifted to local first.
	return t.In(time.Local), nil
}

// parseMeal accepts a backend token or a display label. An empty value is
// inferred from the hour of at.
func parseMeal(s string, at time.Time) (model.MealType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		switch h := at.Hour(); {
		case h >= 5 && h < 10:
			return model.MealBreakfast, nil
		case h >= 10 && h < 14:
			return model.MealLunch, nil
		case h >= 17 && h < 21:
			return model.MealDinner, nil
		default:
			return model.MealSnack, nil
		}
	}
	if m, err := model.ParseMealType(strings.ToLower(s)); err == nil {
		return m, nil
	}
	m, err := model.MealTypeFromLabel(s)
	if err != nil {
		return model.MealUnspecified, fmt.Errorf("unknown meal %q (one of %s)", s, strings.Join(model.MealTypeTokens(), ", "))
	}
	return m, nil
}

// parseCategory accepts a backend token or a display label.
func parseCategory(s string) (model.ExerciseCategory, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.ExerciseUnspecified, nil
	}
	if c, err := model.ParseExerciseCategory(strings.ToUpper(s)); err == nil {
		return c, nil
	}
	c, err := model.ExerciseCategoryFromLabel(s)
	if err != nil {
		return model.ExerciseUnspecified, fmt.Errorf("unknown exercise type %q (one of %s)", s, strings.Join(model.ExerciseCategoryTokens(), ", "))
	}
	return c, nil
}
