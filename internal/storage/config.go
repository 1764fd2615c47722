package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	AppDirName     = ".shellguard"
	EnvPrefix      = "SHELLGUARD"
)

// apiKeyEnvVars are consulted in order when no key is configured.
var apiKeyEnvVars = []string{"OPENROUTER_API_KEY", "OPENAI_API_KEY"}

var config *Config

// Config holds the application configuration
type Config struct {
	AI       AIConfig        `mapstructure:"ai"`
	Security security.Policy `mapstructure:"security"`
	Report   ReportConfig    `mapstructure:"report"`
}

// AIConfig holds AI-related configuration
type AIConfig struct {
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	Timeout   int    `mapstructure:"timeout"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	Format         string `mapstructure:"format"`
	RenderMarkdown bool   `mapstructure:"render_markdown"`
	SaveHistory    bool   `mapstructure:"save_history"`
}

// DefaultReportConfig returns default report configuration
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Format:         "text",
		RenderMarkdown: true,
		SaveHistory:    false,
	}
}

// GetConfigDir returns the shellguard config directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, AppDirName), nil
}

// InitConfig initializes the configuration
func InitConfig() (*Config, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	// Create config directory if not exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// .env files never override variables already set in the environment
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(configDir, ".env"))

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("ai.provider", "openrouter")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "openai/gpt-4-turbo")
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.timeout", 30)
	v.SetDefault("ai.max_tokens", 500)

	// Security defaults
	v.SetDefault("security.command_level", string(security.ConfirmDangerous))
	v.SetDefault("security.min_severity", "")
	v.SetDefault("security.disabled_kinds", []string{})

	// Report defaults
	v.SetDefault("report.format", "text")
	v.SetDefault("report.render_markdown", true)
	v.SetDefault("report.save_history", false)

	// Read config file (ignore if not exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.AI.APIKey == "" {
		for _, name := range apiKeyEnvVars {
			if key := os.Getenv(name); key != "" {
				cfg.AI.APIKey = key
				break
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	config = &cfg
	return config, nil
}

// Validate checks values viper cannot type check and normalizes the
// severity name.
func (c *Config) Validate() error {
	sev, err := security.ParseSeverity(string(c.Security.MinSeverity))
	if err != nil {
		return fmt.Errorf("invalid security.min_severity: %w", err)
	}
	c.Security.MinSeverity = sev
	for _, k := range c.Security.DisabledKinds {
		if !security.IsKnownKind(k) {
			return fmt.Errorf("invalid security.disabled_kinds: unknown kind %q", k)
		}
	}
	switch c.Security.CommandLevel {
	case security.ConfirmAlways, security.ConfirmDangerous, security.ConfirmNever:
	default:
		return fmt.Errorf("invalid security.command_level: %q", c.Security.CommandLevel)
	}
	return nil
}

// GetConfig returns the loaded config
func GetConfig() *Config {
	return config
}

// SaveConfig saves the current config to file
func SaveConfig(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// Create config directory if not exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(configDir)

	v.Set("ai.provider", cfg.AI.Provider)
	v.Set("ai.api_key", cfg.AI.APIKey)
	v.Set("ai.model", cfg.AI.Model)
	v.Set("ai.base_url", cfg.AI.BaseURL)
	v.Set("ai.timeout", cfg.AI.Timeout)
	v.Set("ai.max_tokens", cfg.AI.MaxTokens)

	disabled := make([]string, 0, len(cfg.Security.DisabledKinds))
	for _, k := range cfg.Security.DisabledKinds {
		disabled = append(disabled, string(k))
	}
	v.Set("security.command_level", string(cfg.Security.CommandLevel))
	v.Set("security.min_severity", string(cfg.Security.MinSeverity))
	v.Set("security.disabled_kinds", disabled)

	v.Set("report.format", cfg.Report.Format)
	v.Set("report.render_markdown", cfg.Report.RenderMarkdown)
	v.Set("report.save_history", cfg.Report.SaveHistory)

	configPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileType)
	return v.WriteConfigAs(configPath)
}
