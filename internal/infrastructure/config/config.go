// Package config loads application settings: a YAML file through viper with
// env-file layering on top for secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"autoapply/internal/domain/entity"
)

type Config struct {
	Search      SearchConfig      `mapstructure:"search"`
	Limits      LimitsConfig      `mapstructure:"limits"`
	Paths       PathsConfig       `mapstructure:"paths"`
	Browser     BrowserConfig     `mapstructure:"browser"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Screenshots ScreenshotsConfig `mapstructure:"screenshots"`
	Engine      EngineConfig      `mapstructure:"engine"`
	Logger      LoggerConfig      `mapstructure:"logger"`
}

type SearchConfig struct {
	Keywords string `mapstructure:"keywords"`
	Location string `mapstructure:"location"`
}

type LimitsConfig struct {
	ApplicationsPerRun int `mapstructure:"applications_per_run"`
}

type PathsConfig struct {
	Resume     string `mapstructure:"resume"`
	ResumeText string `mapstructure:"resume_text"`
}

type BrowserConfig struct {
	Headless   bool          `mapstructure:"headless"`
	SlowMotion time.Duration `mapstructure:"slow_motion"`
	Timeout    time.Duration `mapstructure:"timeout"`
	NoSandbox  bool          `mapstructure:"no_sandbox"`
}

type LLMConfig struct {
	// Provider selects the answer backend: "ollama" or "openai".
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	ServerURL string `mapstructure:"server_url"`
	BaseURL   string `mapstructure:"base_url"`
}

type ScreenshotsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Dir           string `mapstructure:"dir"`
	MaxWidth      int    `mapstructure:"max_width"`
	SaveOnSuccess bool   `mapstructure:"save_on_success"`
	SaveOnError   bool   `mapstructure:"save_on_error"`
	SaveFinalOnly bool   `mapstructure:"save_final_only"`
}

// Policy converts the file-level section into the domain policy value.
func (s ScreenshotsConfig) Policy() entity.ScreenshotPolicy {
	return entity.ScreenshotPolicy{
		Enabled:       s.Enabled,
		SaveOnSuccess: s.SaveOnSuccess,
		SaveOnError:   s.SaveOnError,
		SaveFinalOnly: s.SaveFinalOnly,
	}
}

type EngineConfig struct {
	MaxSteps       int           `mapstructure:"max_steps"`
	ErrorThreshold int           `mapstructure:"error_threshold"`
	StepDelay      time.Duration `mapstructure:"step_delay"`
	Strict         bool          `mapstructure:"strict"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Console    bool   `mapstructure:"console"`
}

// Secrets come from the environment only, never the config file.
type Secrets struct {
	Username  string
	Password  string
	LLMAPIKey string
}

// LoadEnv layers .env then .env.<APP_ENV>; the latter wins. Missing files
// are fine, env vars may come from the shell.
func LoadEnv() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(fmt.Sprintf(".env.%s", appEnv))
}

func LoadSecrets() Secrets {
	return Secrets{
		Username:  os.Getenv("LINKEDIN_USERNAME"),
		Password:  os.Getenv("LINKEDIN_PASSWORD"),
		LLMAPIKey: os.Getenv("LLM_API_KEY"),
	}
}

// Load reads the config file at path, or searches the working directory for
// config.yaml when path is empty. File values override the defaults below.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.keywords", "software engineer")
	v.SetDefault("search.location", "United States")

	v.SetDefault("limits.applications_per_run", 10)

	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.slow_motion", "500ms")
	v.SetDefault("browser.timeout", "10s")
	v.SetDefault("browser.no_sandbox", true)

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.model", "llama3.2")
	v.SetDefault("llm.server_url", "http://localhost:11434")

	v.SetDefault("screenshots.enabled", true)
	v.SetDefault("screenshots.dir", "screenshots")
	v.SetDefault("screenshots.max_width", 1280)
	v.SetDefault("screenshots.save_on_error", true)
	v.SetDefault("screenshots.save_on_success", false)
	v.SetDefault("screenshots.save_final_only", false)

	v.SetDefault("engine.max_steps", 30)
	v.SetDefault("engine.error_threshold", 3)
	v.SetDefault("engine.step_delay", "1s")
	v.SetDefault("engine.strict", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file_path", "log/autoapply.log")
	v.SetDefault("logger.max_size_mb", 20)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 14)
	v.SetDefault("logger.console", true)
}
