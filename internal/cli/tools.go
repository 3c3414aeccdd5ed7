package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/logtail"
	"github.com/five82/fitlog/internal/mets"
)

type SuggestCmd struct {
	Type string `arg:"" optional:"" enum:"diet,exercise" default:"diet" help:"Suggestion kind (diet or exercise)."`
	Date string `short:"d" help:"Day the suggestion is for." default:"today"`
}

func (cmd *SuggestCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	day, err := parseDay(cmd.Date, c.now())
	if err != nil {
		return err
	}
	s, err := backend.Suggest(c.context(), api.SuggestionRequest{Type: cmd.Type, Date: day.Format(api.DateLayout)})
	if err != nil {
		return err
	}
	c.printf("%s\n", strings.TrimSpace(s.Suggestion))
	return nil
}

type MetsCmd struct {
	List MetsListCmd `cmd:"" default:"1" help:"List METs values."`
	Show MetsShowCmd `cmd:"" help:"Show one activity and estimate calories burned."`
	Set  MetsSetCmd  `cmd:"" help:"Add or change an activity's METs value."`
}

type MetsListCmd struct {
	Filter string `arg:"" optional:"" help:"Only list activities whose name contains this."`
}

func (cmd *MetsListCmd) Run(c *Context) error {
	cfg, _, err := c.env()
	if err != nil {
		return err
	}
	ctx := c.context()
	table, err := mets.Open(ctx, cfg.METsDB)
	if err != nil {
		return err
	}
	defer table.Close()

	var entries []mets.Entry
	if cmd.Filter != "" {
		entries, err = table.Search(ctx, cmd.Filter)
	} else {
		entries, err = table.List(ctx)
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		c.printf("%-10s %5.1f  %s\n", e.Name, e.Value, e.Category.Label())
	}
	return nil
}

type MetsShowCmd struct {
	Name    string  `arg:"" help:"Activity name."`
	Minutes int     `short:"m" help:"Duration to estimate for." default:"30"`
	Weight  float64 `short:"w" help:"Body weight in kg; defaults to weight_kg from the config."`
}

func (cmd *MetsShowCmd) Run(c *Context) error {
	cfg, _, err := c.env()
	if err != nil {
		return err
	}
	ctx := c.context()
	table, err := mets.Open(ctx, cfg.METsDB)
	if err != nil {
		return err
	}
	defer table.Close()

	e, err := table.Lookup(ctx, cmd.Name)
	if err != nil {
		return err
	}
	weight := cmd.Weight
	if weight <= 0 {
		weight = cfg.WeightKg
	}
	burned := mets.EstimateBurned(e.Value, weight, time.Duration(cmd.Minutes)*time.Minute)
	c.printf("%s  %.1f METs  %s\n", e.Name, e.Value, e.Category.Label())
	c.printf("%d 分钟 @ %.1f kg ≈ %.0f kcal\n", cmd.Minutes, weight, burned)
	return nil
}

type MetsSetCmd struct {
	Name  string  `arg:"" help:"Activity name."`
	Value float64 `arg:"" help:"METs value."`
	Type  string  `short:"t" help:"Exercise type."`
}

func (cmd *MetsSetCmd) Run(c *Context) error {
	cfg, _, err := c.env()
	if err != nil {
		return err
	}
	category, err := parseCategory(cmd.Type)
	if err != nil {
		return err
	}
	ctx := c.context()
	table, err := mets.Open(ctx, cfg.METsDB)
	if err != nil {
		return err
	}
	defer table.Close()

	if err := table.Upsert(ctx, mets.Entry{Name: cmd.Name, Category: category, Value: cmd.Value}); err != nil {
		return err
	}
	c.printf("%s = %.1f METs\n", strings.TrimSpace(cmd.Name), cmd.Value)
	return nil
}

type LogsCmd struct {
	Lines   int    `short:"n" help:"Number of trailing lines to show (0 for all)." default:"50"`
	Level   string `short:"l" help:"Minimum level (debug, info, warn, error)."`
	NoColor bool   `help:"Disable level colors."`
}

func (cmd *LogsCmd) Run(c *Context) error {
	cfg, _, err := c.env()
	if err != nil {
		return err
	}
	path := cfg.LogPath()
	lines, err := logtail.Read(path, 0)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if cmd.Level != "" {
		minLevel, err := logtail.ParseLevel(cmd.Level)
		if err != nil {
			return err
		}
		lines = logtail.Filter(lines, minLevel)
	}
	if cmd.Lines > 0 && len(lines) > cmd.Lines {
		lines = lines[len(lines)-cmd.Lines:]
	}
	if len(lines) == 0 {
		c.printf("%s 暂无日志\n", path)
		return nil
	}
	if !cmd.NoColor {
		lines = logtail.ColorizeLines(lines)
	}
	c.printf("%s\n", strings.Join(lines, "\n"))
	return nil
}
