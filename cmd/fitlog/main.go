package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/app"
	"github.com/five82/fitlog/internal/cli"
	"github.com/five82/fitlog/internal/config"
	"github.com/five82/fitlog/internal/logger"
)

var CLI struct {
	cli.Globals

	Login    cli.LoginCmd    `cmd:"" help:"Log in and store the access token."`
	Register cli.RegisterCmd `cmd:"" help:"Create an account and log in."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Forget the stored token."`
	Today    cli.TodayCmd    `cmd:"" help:"Print a day's timeline and totals."`
	Profile  cli.ProfileCmd  `cmd:"" help:"Show the account profile."`
	Food     cli.FoodCmd     `cmd:"" help:"Record, delete and search foods."`
	Exercise cli.ExerciseCmd `cmd:"" help:"Record, delete and search exercises."`
	Recipe   cli.RecipeCmd   `cmd:"" help:"Browse recipes."`
	Suggest  cli.SuggestCmd  `cmd:"" help:"Ask for a diet or exercise suggestion."`
	Mets     cli.MetsCmd     `cmd:"" help:"Inspect the local METs table."`
	Logs     cli.LogsCmd     `cmd:"" help:"Show the fitlog log file."`
	Tui      cli.TuiCmd      `cmd:"" default:"1" help:"Launch the interactive day view."`
}

func main() {
	os.Exit(run())
}

func run() int {
	kctx := kong.Parse(&CLI,
		kong.Name("fitlog"),
		kong.Description("Diet and exercise diary client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := &cli.Context{
		Ctx:      ctx,
		Globals:  CLI.Globals,
		Out:      os.Stdout,
		Prompter: cli.FormPrompter{},
		Setup: func(g cli.Globals) (config.Config, api.Backend, error) {
			return app.Setup(g.Config, g.Demo, g.Debug)
		},
	}

	if err := kctx.Run(c); err != nil {
		logger.Error("command failed", "command", kctx.Command(), "error", err)
		fmt.Fprintf(os.Stderr, "fitlog: %s\n", api.UserMessage(err))
		return 1
	}
	return 0
}
