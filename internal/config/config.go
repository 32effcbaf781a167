// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config layers command-line flags, DOCX_RECASE_* environment
// variables, an optional YAML config file, and built-in defaults into the
// settings used by both programs. It also prepares the process environment
// from a .env file and a .secrets/ directory before the AWS SDK reads it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/docx-recase/internal/secrets"
	"github.com/pdiddy/docx-recase/pkg/types"
)

const (
	// AppName names the default config file and its directory.
	AppName = "docx-recase"

	// EnvPrefix prefixes environment overrides, e.g. DOCX_RECASE_BATCH_SIZE.
	EnvPrefix = "DOCX_RECASE"
)

// Init points v at the config file. An empty cfgFile searches for
// docx-recase.yaml in the working directory and ~/.config/docx-recase/.
// It returns the file used, or "" when none was found.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return "", nil
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

func setDefaults(v *viper.Viper) {
	p := types.DefaultProcessConfig()
	v.SetDefault("bedrock.region", p.Bedrock.Region)
	v.SetDefault("bedrock.profile", p.Bedrock.Profile)
	v.SetDefault("bedrock.model_id", p.Bedrock.ModelID)
	v.SetDefault("bedrock.max_tokens", p.Bedrock.MaxTokens)
	v.SetDefault("bedrock.temperature", p.Bedrock.Temperature)
	v.SetDefault("bedrock.top_p", p.Bedrock.TopP)
	v.SetDefault("bedrock.max_retries", p.Bedrock.MaxRetries)
	v.SetDefault("bedrock.retry_base_delay", p.Bedrock.RetryBaseDelay)
	v.SetDefault("bedrock.sdk_max_attempts", p.Bedrock.SDKMaxAttempts)
	v.SetDefault("bedrock.connect_timeout", p.Bedrock.ConnectTimeout)
	v.SetDefault("bedrock.read_timeout", p.Bedrock.ReadTimeout)
	v.SetDefault("batch_size", p.BatchSize)
	v.SetDefault("batch_delay", p.BatchDelay)
	v.SetDefault("cache_path", "")
	v.SetDefault("report_path", "")

	l := types.DefaultLayoutConfig()
	v.SetDefault("layout.font_name", l.FontName)
	v.SetDefault("layout.font_size", l.FontSize)
	v.SetDefault("layout.space_after", l.SpaceAfter)
	v.SetDefault("layout.heading_space_before", l.HeadingSpaceBefore)
	v.SetDefault("layout.line_spacing", l.LineSpacing)
	v.SetDefault("layout.margin", l.Margin)
	v.SetDefault("layout.heading_max_words", l.HeadingMaxWords)
}

// BindFlags binds each named flag in fs to its config key. Flags that the
// user set take precedence over environment, file and defaults.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %q: %w", flag, err)
		}
	}
	return nil
}

// Process returns the process-doc settings held by v.
func Process(v *viper.Viper) (types.ProcessConfig, error) {
	cfg := types.DefaultProcessConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return types.ProcessConfig{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.BatchSize <= 0 {
		return types.ProcessConfig{}, fmt.Errorf("batch_size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.Bedrock.ModelID == "" {
		return types.ProcessConfig{}, errors.New("bedrock.model_id must not be empty")
	}
	return cfg, nil
}

// Layout returns the text-to-word settings held by v.
func Layout(v *viper.Viper) (types.LayoutConfig, error) {
	wrapper := struct {
		Layout types.LayoutConfig `mapstructure:"layout"`
	}{Layout: types.DefaultLayoutConfig()}
	if err := v.Unmarshal(&wrapper); err != nil {
		return types.LayoutConfig{}, fmt.Errorf("decoding layout configuration: %w", err)
	}
	cfg := wrapper.Layout
	if cfg.FontSize <= 0 {
		return types.LayoutConfig{}, fmt.Errorf("layout.font_size must be positive, got %v", cfg.FontSize)
	}
	return cfg, nil
}

// LoadEnvironment reads envFile (if present) into the process environment
// and then fills unset AWS variables from the key files in secretsDir.
// Existing environment variables are never overwritten. It returns the
// names of the variables set from secretsDir.
func LoadEnvironment(envFile, secretsDir string) ([]string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	s, err := secrets.Load(secretsDir)
	if err != nil {
		return nil, err
	}
	return secrets.ExportEnv(s)
}
