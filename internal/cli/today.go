package cli

import (
	"time"

	"github.com/five82/fitlog/internal/app"
	"github.com/five82/fitlog/internal/normalize"
	"github.com/five82/fitlog/internal/ui"
)

type TodayCmd struct {
	Date    string `short:"d" help:"Day to show (YYYY-MM-DD, today, yesterday)." default:"today"`
	Summary bool   `help:"Also print the server-side daily summary."`
	Theme   string `help:"Color theme (Dracula, Slate)."`
}

func (cmd *TodayCmd) Run(c *Context) error {
	cfg, backend, err := c.env()
	if err != nil {
		return err
	}
	day, err := parseDay(cmd.Date, c.now())
	if err != nil {
		return err
	}
	ctx := c.context()

	r := &app.Refresher{Backend: backend, Targets: app.ResolveTargets(ctx, backend, cfg)}
	d, err := r.Load(ctx, day)
	if err != nil {
		return err
	}

	styles := ui.GetTheme(cmd.Theme).Styles()
	c.printf("%s\n", ui.RenderDay(ui.DayView{
		Date:     d.Date,
		Timeline: d.Timeline,
		Stats:    d.Stats,
		HasData:  true,
		Skipped:  d.Skipped,
	}, styles))

	if cmd.Summary {
		sum, err := backend.DailySummary(ctx, day)
		if err != nil {
			return err
		}
		c.printf("\n服务器汇总 %s: 摄入 %.0f kcal  消耗 %.0f kcal  目标 %.0f kcal\n",
			sum.Date, sum.TotalCalories, sum.CaloriesBurned, sum.TargetCalories)
	}
	return nil
}

type ProfileCmd struct{}

func (cmd *ProfileCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	raw, err := backend.Profile(c.context())
	if err != nil {
		return err
	}
	p, err := normalize.Profile(raw)
	if err != nil {
		return err
	}
	c.printf("用户: %s\n", p.Username)
	if p.Gender.Backend() != "" {
		c.printf("性别: %s\n", p.Gender.Label())
	}
	if p.Age > 0 {
		c.printf("年龄: %d\n", p.Age)
	}
	if p.HeightCm > 0 || p.WeightKg > 0 {
		c.printf("身高/体重: %.0f cm / %.1f kg\n", p.HeightCm, p.WeightKg)
	}
	if p.ActivityLevel.Backend() != "" {
		c.printf("活动水平: %s\n", p.ActivityLevel.Label())
	}
	if p.Goal.Backend() != "" {
		c.printf("目标: %s\n", p.Goal.Label())
	}
	if p.DailyCalorieTarget > 0 {
		c.printf("每日热量目标: %.0f kcal\n", p.DailyCalorieTarget)
	}
	return nil
}

type TuiCmd struct {
	Date string        `short:"d" help:"Day to open (YYYY-MM-DD, today, yesterday)." default:"today"`
	Poll time.Duration `help:"Refresh interval." default:"15s"`
}

func (cmd *TuiCmd) Run(c *Context) error {
	day, err := parseDay(cmd.Date, c.now())
	if err != nil {
		return err
	}
	return app.Run(c.context(), app.Options{
		ConfigPath: c.Globals.Config,
		Demo:       c.Globals.Demo,
		Debug:      c.Globals.Debug,
		PollEvery:  cmd.Poll,
		Date:       day,
	})
}
