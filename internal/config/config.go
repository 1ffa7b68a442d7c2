package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/studygenie/studygenie/internal/llm"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string     `mapstructure:"env"`     // application environment (local, production)
	DBPath  string     `mapstructure:"db_path"` // SQLite file; empty means the XDG default
	Locale  string     `mapstructure:"locale"`  // UI and tutor locale code
	Learner string     `mapstructure:"learner"` // display name on the leaderboard
	Catalog Catalog    `mapstructure:"catalog"` // question sources
	Quiz    Quiz       `mapstructure:"quiz"`    // quiz setup defaults
	LLM     llm.Config `mapstructure:"llm"`     // optional AI provider
}

// Catalog configures where quiz questions come from.
type Catalog struct {
	Paths    []string `mapstructure:"paths"`    // extra YAML/JSON catalog files, merged after the built-in bank
	Generate bool     `mapstructure:"generate"` // ask the LLM provider for additional questions
	PerTier  int      `mapstructure:"per_tier"` // generated questions per difficulty tier
}

// Quiz holds the defaults offered by the quiz setup screen and CLI.
type Quiz struct {
	DefaultCount      int           `mapstructure:"default_count"`
	DefaultDifficulty string        `mapstructure:"default_difficulty"`
	DefaultFocus      string        `mapstructure:"default_focus"`
	TimeLimit         time.Duration `mapstructure:"time_limit"`
}

// Load reads configuration from an optional .env file, a YAML config file
// and STUDYGENIE_* environment variables. path selects the config file
// explicitly; when empty, studygenie.yaml is searched in the usual places
// and its absence is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("studygenie")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir, err := configHome(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "studygenie"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix("STUDYGENIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env", "STUDYGENIE_ENV", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// The LLM layer's own variables (STUDYGENIE_OPENAI_API_KEY, ...) win
	// over the file; standard provider keys are used when nothing is selected.
	cfg.LLM.ApplyEnv()
	if !cfg.LLM.Enabled() {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Retry = cfg.LLM.Retry
			discovered.Timeout = cfg.LLM.Timeout
			cfg.LLM = discovered
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	if c.Quiz.DefaultCount < 1 {
		return fmt.Errorf("quiz.default_count must be at least 1, got %d", c.Quiz.DefaultCount)
	}
	switch c.Quiz.DefaultDifficulty {
	case "easy", "medium", "hard", "adaptive":
	default:
		return fmt.Errorf("quiz.default_difficulty: unknown difficulty %q", c.Quiz.DefaultDifficulty)
	}
	switch c.Quiz.DefaultFocus {
	case "learning", "review", "test":
	default:
		return fmt.Errorf("quiz.default_focus: unknown focus mode %q", c.Quiz.DefaultFocus)
	}
	if c.Catalog.Generate && c.Catalog.PerTier < 1 {
		return fmt.Errorf("catalog.per_tier must be at least 1 when generation is on")
	}
	return nil
}

// IsProduction reports whether production logging should be used.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("env", "local")
	v.SetDefault("db_path", "")
	v.SetDefault("locale", "en")
	v.SetDefault("learner", defaultLearner())
	v.SetDefault("catalog.paths", []string{})
	v.SetDefault("catalog.generate", false)
	v.SetDefault("catalog.per_tier", 3)
	v.SetDefault("quiz.default_count", 5)
	v.SetDefault("quiz.default_difficulty", "medium")
	v.SetDefault("quiz.default_focus", "learning")
	v.SetDefault("quiz.time_limit", "0s")

	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout.String())
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait.String())
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait.String())
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
}

func configHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

func defaultLearner() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "learner"
}
