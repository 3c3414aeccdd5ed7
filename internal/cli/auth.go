package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/five82/fitlog/internal/api"
	"github.com/five82/fitlog/internal/logger"
)

// Credentials collected for login or registration.
type Credentials struct {
	Username string
	Password string
	Email    string
}

// Prompter fills in credentials the user did not pass as flags.
type Prompter interface {
	Credentials(c *Credentials, register bool) error
}

// FormPrompter asks interactively with a huh form.
type FormPrompter struct{}

// Credentials runs a huh form prefilled with the values already in c.
func (FormPrompter) Credentials(c *Credentials, register bool) error {
	fields := []huh.Field{
		huh.NewInput().
			Title("用户名").
			Value(&c.Username).
			Validate(required("username")),
		huh.NewInput().
			Title("密码").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password).
			Validate(required("password")),
	}
	if register {
		fields = append(fields, huh.NewInput().
			Title("邮箱").
			Description("可选").
			Value(&c.Email))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

func (c *Context) credentials(creds *Credentials, register bool) error {
	if strings.TrimSpace(creds.Username) != "" && creds.Password != "" {
		return nil
	}
	if c.Prompter == nil {
		return errors.New("username and password are required")
	}
	if err := c.Prompter.Credentials(creds, register); err != nil {
		return err
	}
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

type LoginCmd struct {
	Username string `short:"u" help:"Account name; prompted when omitted."`
	Password string `short:"p" help:"Password; prompted when omitted." env:"FITLOG_PASSWORD"`
}

func (cmd *LoginCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	creds := Credentials{Username: cmd.Username, Password: cmd.Password}
	if err := c.credentials(&creds, false); err != nil {
		return err
	}
	if err := backend.Login(c.context(), creds.Username, creds.Password); err != nil {
		return err
	}
	logger.Info("logged in", "username", creds.Username)
	c.printf("已登录: %s\n", strings.TrimSpace(creds.Username))
	return nil
}

type RegisterCmd struct {
	Username string `short:"u" help:"Account name; prompted when omitted."`
	Password string `short:"p" help:"Password; prompted when omitted." env:"FITLOG_PASSWORD"`
	Email    string `short:"e" help:"Optional e-mail address."`
}

func (cmd *RegisterCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	creds := Credentials{Username: cmd.Username, Password: cmd.Password, Email: cmd.Email}
	if err := c.credentials(&creds, true); err != nil {
		return err
	}
	req := api.RegisterRequest{
		Username: creds.Username,
		Password: creds.Password,
		Email:    strings.TrimSpace(creds.Email),
	}
	if err := backend.Register(c.context(), req); err != nil {
		return err
	}
	logger.Info("registered", "username", req.Username)
	c.printf("已注册并登录: %s\n", strings.TrimSpace(req.Username))
	return nil
}

type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(c *Context) error {
	_, backend, err := c.env()
	if err != nil {
		return err
	}
	if err := backend.Logout(); err != nil {
		return err
	}
	logger.Info("logged out")
	c.printf("已退出登录\n")
	return nil
}
