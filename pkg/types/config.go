// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and result types shared by the
// process-doc and text-to-word programs.
package types

import "time"

// BedrockConfig holds settings for calls to the Bedrock runtime API.
type BedrockConfig struct {
	// Region pins the AWS region hosting the model. Empty defers to the
	// AWS environment and shared config, then DefaultRegion.
	Region string `json:"region,omitempty" yaml:"region,omitempty" mapstructure:"region"`

	// Profile is an optional shared-config profile name. Empty uses the
	// default credential chain.
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty" mapstructure:"profile"`

	// ModelID is the Bedrock model or inference profile identifier.
	ModelID string `json:"model_id" yaml:"model_id" mapstructure:"model_id"`

	// MaxTokens caps the length of each model response (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
	TopP        float64 `json:"top_p" yaml:"top_p" mapstructure:"top_p"`

	// MaxRetries is the number of retries after a throttling error (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// RetryBaseDelay is the first backoff wait; each retry doubles it (default 1s).
	RetryBaseDelay time.Duration `json:"retry_base_delay" yaml:"retry_base_delay" mapstructure:"retry_base_delay"`

	// SDKMaxAttempts is the attempt budget of the SDK's own adaptive retryer (default 3).
	SDKMaxAttempts int `json:"sdk_max_attempts" yaml:"sdk_max_attempts" mapstructure:"sdk_max_attempts"`

	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout" mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
}

// ProcessConfig holds settings for the process-doc program.
type ProcessConfig struct {
	Bedrock BedrockConfig `json:"bedrock" yaml:"bedrock" mapstructure:"bedrock"`

	// BatchSize is the number of paragraphs processed in parallel (default 5).
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`

	// BatchDelay is the pause between consecutive batches (default 1s).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay" mapstructure:"batch_delay"`

	// CachePath is an optional SQLite file holding previously recased paragraphs.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty" mapstructure:"cache_path"`

	// ReportPath is an optional YAML file receiving a per-paragraph run report.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty" mapstructure:"report_path"`
}

// LayoutConfig holds the formatting applied by the text-to-word program.
type LayoutConfig struct {
	FontName string  `json:"font_name" yaml:"font_name" mapstructure:"font_name"`
	FontSize float64 `json:"font_size" yaml:"font_size" mapstructure:"font_size"` // points

	SpaceAfter         float64 `json:"space_after" yaml:"space_after" mapstructure:"space_after"`                            // points
	HeadingSpaceBefore float64 `json:"heading_space_before" yaml:"heading_space_before" mapstructure:"heading_space_before"` // points
	LineSpacing        float64 `json:"line_spacing" yaml:"line_spacing" mapstructure:"line_spacing"`                         // multiple of single spacing

	// Margin is applied to all four page edges, in inches.
	Margin float64 `json:"margin" yaml:"margin" mapstructure:"margin"`

	// HeadingMaxWords is the longest paragraph, in words, that can be
	// treated as a heading (default 10).
	HeadingMaxWords int `json:"heading_max_words" yaml:"heading_max_words" mapstructure:"heading_max_words"`
}

// Default values shared by the config loader and the packages that fall back
// to them when a zero value is passed.
const (
	DefaultRegion         = "us-east-1"
	DefaultModelID        = "us.anthropic.claude-3-7-sonnet-20250219-v1:0"
	DefaultMaxTokens      = 4096
	DefaultTemperature    = 0.1
	DefaultTopP           = 0.9
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = time.Second
	DefaultSDKMaxAttempts = 3
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 30 * time.Second
	DefaultBatchSize      = 5
	DefaultBatchDelay     = time.Second

	DefaultFontName           = "Calibri"
	DefaultFontSize           = 11
	DefaultSpaceAfter         = 10
	DefaultHeadingSpaceBefore = 12
	DefaultLineSpacing        = 1.15
	DefaultMargin             = 1
	DefaultHeadingMaxWords    = 10
)

// DefaultProcessConfig returns a ProcessConfig populated with defaults.
func DefaultProcessConfig() ProcessConfig {
	return ProcessConfig{
		Bedrock: BedrockConfig{
			ModelID:        DefaultModelID,
			MaxTokens:      DefaultMaxTokens,
			Temperature:    DefaultTemperature,
			TopP:           DefaultTopP,
			MaxRetries:     DefaultMaxRetries,
			RetryBaseDelay: DefaultRetryBaseDelay,
			SDKMaxAttempts: DefaultSDKMaxAttempts,
			ConnectTimeout: DefaultConnectTimeout,
			ReadTimeout:    DefaultReadTimeout,
		},
		BatchSize:  DefaultBatchSize,
		BatchDelay: DefaultBatchDelay,
	}
}

// DefaultLayoutConfig returns a LayoutConfig populated with defaults.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		FontName:           DefaultFontName,
		FontSize:           DefaultFontSize,
		SpaceAfter:         DefaultSpaceAfter,
		HeadingSpaceBefore: DefaultHeadingSpaceBefore,
		LineSpacing:        DefaultLineSpacing,
		Margin:             DefaultMargin,
		HeadingMaxWords:    DefaultHeadingMaxWords,
	}
}
