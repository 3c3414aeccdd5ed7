package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything fitlog reads from config.toml.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	LogDir          string
	TokenStore      string
	CredentialsPath string
	KeyringUser     string
	METsDB          string
	WeightKg        float64
	Targets         Targets
}

// Targets are the user's daily nutrition goals. Zero disables a target.
type Targets struct {
	Calories float64 `toml:"calories"`
	Protein  float64 `toml:"protein"`
	Carbs    float64 `toml:"carbs"`
	Fat      float64 `toml:"fat"`
}

const (
	defaultConfigPath = "~/.config/fitlog/config.toml"
	defaultBaseURL    = "http://127.0.0.1:8000"
	defaultTimeout    = 10 * time.Second
	defaultLogDir     = "~/.local/share/fitlog/logs"
	defaultTokenStore = "file"
	defaultCredsPath  = "~/.config/fitlog/credentials.toml"
	defaultMETsDB     = "~/.local/share/fitlog/mets.db"
	defaultWeightKg   = 60
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:         defaultBaseURL,
		Timeout:         defaultTimeout,
		LogDir:          mustExpand(defaultLogDir),
		TokenStore:      defaultTokenStore,
		CredentialsPath: mustExpand(defaultCredsPath),
		METsDB:          mustExpand(defaultMETsDB),
		WeightKg:        defaultWeightKg,
		Targets:         Targets{Calories: 2000, Protein: 60, Carbs: 250, Fat: 65},
	}
}

// Load locates and parses the fitlog config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL         string   `toml:"base_url"`
		TimeoutSeconds  int      `toml:"timeout_seconds"`
		LogDir          string   `toml:"log_dir"`
		TokenStore      string   `toml:"token_store"`
		CredentialsPath string   `toml:"credentials_path"`
		KeyringUser     string   `toml:"keyring_user"`
		METsDB          string   `toml:"mets_db"`
		WeightKg        float64  `toml:"weight_kg"`
		Targets         *Targets `toml:"targets"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if raw.TimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: timeout_seconds must not be negative")
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.TokenStore)); v != "" {
		switch v {
		case "file", "keyring", "memory":
			cfg.TokenStore = v
		default:
			return Config{}, fmt.Errorf("parse config: unknown token_store %q", raw.TokenStore)
		}
	}
	if v := strings.TrimSpace(raw.CredentialsPath); v != "" {
		cfg.CredentialsPath = mustExpand(v)
	}
	cfg.KeyringUser = strings.TrimSpace(raw.KeyringUser)
	if v := strings.TrimSpace(raw.METsDB); v != "" {
		cfg.METsDB = mustExpand(v)
	}
	if raw.WeightKg < 0 {
		return Config{}, fmt.Errorf("parse config: weight_kg must not be negative")
	}
	if raw.WeightKg > 0 {
		cfg.WeightKg = raw.WeightKg
	}
	if raw.Targets != nil {
		t := *raw.Targets
		if t.Calories < 0 || t.Protein < 0 || t.Carbs < 0 || t.Fat < 0 {
			return Config{}, fmt.Errorf("parse config: targets must not be negative")
		}
		cfg.Targets = t
	}

	return cfg, nil
}

// LogPath returns the path to the fitlog log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/fitlog.log")
	}
	return filepath.Join(c.LogDir, "fitlog.log")
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
