package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"terraform-applyx/internal/ci"
)

const (
	ConfigFileName = ".terraform-applyx"
	ConfigFileType = "yaml"
)

// Config holds the settings for one terraform-applyx invocation.
type Config struct {
	WorkingDir    string        `mapstructure:"working_dir"`
	PlanFile      string        `mapstructure:"planfile"`
	Credentials   string        `mapstructure:"credentials"`
	Secrets       string        `mapstructure:"secrets"`
	LogLevel      string        `mapstructure:"log_level"`
	RecordHistory bool          `mapstructure:"record_history"`
	History       HistoryConfig `mapstructure:"history"`
}

// HistoryConfig holds the Neo4j connection settings for the optional apply
// history recorder.
type HistoryConfig struct {
	URI         string `mapstructure:"uri"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DockerImage string `mapstructure:"docker_image"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		WorkingDir: ".",
		Secrets:    "{}",
		LogLevel:   "info",
		History: HistoryConfig{
			URI:         "bolt://localhost:7687",
			User:        "neo4j",
			Password:    "",
			DockerImage: "neo4j:community",
		},
	}
}

// Load reads the configuration from the .terraform-applyx.yaml file,
// searching the current directory and the home directory, then overlays the
// automation platform's INPUT_* settings. A missing config file is not an
// error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	defaults := DefaultConfig()
	v.SetDefault("working_dir", defaults.WorkingDir)
	v.SetDefault("secrets", defaults.Secrets)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("history.uri", defaults.History.URI)
	v.SetDefault("history.user", defaults.History.User)
	v.SetDefault("history.password", defaults.History.Password)
	v.SetDefault("history.docker_image", defaults.History.DockerImage)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyPlatformInputs(&cfg)
	return &cfg, nil
}

// applyPlatformInputs overlays the workflow settings delivered as INPUT_*
// environment variables. They take precedence over the config file but not
// over flags.
func applyPlatformInputs(cfg *Config) {
	if wd := ci.Input("working_directory"); wd != "" {
		cfg.WorkingDir = wd
	}
	if sec := ci.Input("secrets"); sec != "" {
		cfg.Secrets = sec
	}
	if cred := ci.Input("credentials"); cred != "" {
		cfg.Credentials = cred
	}
}

// LoadAndMerge loads configuration from file and merges it with CLI flags.
// Priority: flags > INPUT_* settings > config file > defaults.
func LoadAndMerge(cmd *cobra.Command, args []string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("working-dir") {
		cfg.WorkingDir, _ = cmd.Flags().GetString("working-dir")
	}

	if cmd.Flags().Changed("secrets") {
		cfg.Secrets, _ = cmd.Flags().GetString("secrets")
	}

	if cmd.Flags().Changed("credentials") {
		cfg.Credentials, _ = cmd.Flags().GetString("credentials")
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	if cmd.Flags().Changed("record-history") {
		cfg.RecordHistory, _ = cmd.Flags().GetBool("record-history")
	}

	if cmd.Flags().Changed("history-uri") {
		cfg.History.URI, _ = cmd.Flags().GetString("history-uri")
	}

	if cmd.Flags().Changed("history-user") {
		cfg.History.User, _ = cmd.Flags().GetString("history-user")
	}

	if cmd.Flags().Changed("history-pass") {
		cfg.History.Password, _ = cmd.Flags().GetString("history-pass")
	}

	// Handle plan file from args or flag
	if len(args) > 0 {
		cfg.PlanFile = args[0]
	} else if cmd.Flags().Changed("plan") {
		cfg.PlanFile, _ = cmd.Flags().GetString("plan")
	}

	return cfg, nil
}

// Save writes the configuration to a .terraform-applyx.yaml file.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = fmt.Sprintf("%s.%s", ConfigFileName, ConfigFileType)
	}

	v := viper.New()
	v.Set("working_dir", cfg.WorkingDir)
	v.Set("log_level", cfg.LogLevel)
	v.Set("history.uri", cfg.History.URI)
	v.Set("history.user", cfg.History.User)
	v.Set("history.password", cfg.History.Password)
	v.Set("history.docker_image", cfg.History.DockerImage)

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file carries the history database password
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set secure permissions on config file: %w", err)
	}

	return nil
}

// Exists checks if a config file exists in the current directory.
func Exists() bool {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(".")

	return v.ReadInConfig() == nil
}
