// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the process-doc CLI, which fixes the
// capitalization of a Word document's paragraphs with a model hosted on
// AWS Bedrock.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/docx-recase/internal/config"
	"github.com/pdiddy/docx-recase/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is replaced in PersistentPreRunE once --verbose is known.
var logger = logging.NewOrNop(false).Sugar()

// rootCmd is the base command for the process-doc CLI.
var rootCmd = &cobra.Command{
	Use:   "process-doc <input.docx>",
	Short: "Fix paragraph capitalization in a Word document with AWS Bedrock",
	Long: `process-doc reads the non-empty paragraphs of a Word document and sends
them to an Anthropic model on AWS Bedrock, which rewrites each paragraph in
standard sentence case with proper nouns, titles, and acronyms capitalized.
Only capitalization changes.

Paragraphs are processed in parallel batches. Throttled requests are retried
with exponential backoff; a paragraph that still fails is logged and left out
of the output. Results are separated by blank lines, so the output can be fed
straight to text-to-word.

AWS credentials come from the environment or a shared-config profile. A .env
file and .secrets/ key files (aws-profile, aws-region, aws-access-key-id,
aws-secret-access-key, aws-session-token) can fill unset variables.`,
	Args:          cobra.ExactArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l.Sugar()

		exported, err := config.LoadEnvironment(".env", ".secrets/")
		if err != nil {
			return err
		}
		if len(exported) > 0 {
			logger.Debugf("Loaded secrets: %v", exported)
		}

		cfgFile, _ := cmd.Flags().GetString("config")
		used, err := config.Init(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		if used != "" {
			logger.Debugf("Using config file: %s", used)
		}
		return config.BindFlags(viper.GetViper(), cmd.Flags(), flagKeys)
	},
	RunE: runProcess,
}

// flagKeys maps flags to the config keys they override.
var flagKeys = map[string]string{
	"region":      "bedrock.region",
	"profile":     "bedrock.profile",
	"model":       "bedrock.model_id",
	"max-retries": "bedrock.max_retries",
	"batch-size":  "batch_size",
	"batch-delay": "batch_delay",
	"cache":       "cache_path",
	"report":      "report_path",
}

func init() {
	f := rootCmd.Flags()
	f.StringP("output", "o", "", "path to output file (default: stdout)")
	f.IntP("paragraph", "p", 0, "process only this paragraph number (1-based index)")
	f.String("region", "", "AWS region (default: AWS_REGION or shared config, else us-east-1)")
	f.String("profile", "", "AWS shared-config profile")
	f.String("model", "", "Bedrock model or inference profile ID")
	f.Int("max-retries", 0, "retries after a throttling error (default 3)")
	f.Int("batch-size", 0, "paragraphs processed in parallel (default 5)")
	f.Duration("batch-delay", 0, "pause between batches (default 1s)")
	f.String("cache", "", "SQLite file caching recased paragraphs across runs")
	f.String("report", "", "write a YAML run report to this file")

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docx-recase.yaml or ~/.config/docx-recase/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("Error: %v", err)
		zap.L().Sync()
		os.Exit(1)
	}
}
