// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the text-to-word CLI, which converts a
// plain-text file into a formatted Word document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/docx-recase/internal/compose"
	"github.com/pdiddy/docx-recase/internal/config"
	"github.com/pdiddy/docx-recase/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

var logger = logging.NewOrNop(false).Sugar()

var rootCmd = &cobra.Command{
	Use:   "text-to-word <input.txt>",
	Short: "Convert a text file to a formatted Word document",
	Long: `text-to-word splits a text file into paragraphs at blank lines and writes
them to a Word document: Calibri 11 pt, 10 pt after each paragraph, 1.15 line
spacing, and 1 inch margins. Short paragraphs (10 words or fewer) that do not
end with a period are treated as headings and set in bold with extra space
above.

The output defaults to the input path with a .docx extension.`,
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

		cfgFile, _ := cmd.Flags().GetString("config")
		used, err := config.Init(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		if used != "" {
			logger.Debugf("Using config file: %s", used)
		}
		return config.BindFlags(viper.GetViper(), cmd.Flags(), map[string]string{
			"font":              "layout.font_name",
			"font-size":         "layout.font_size",
			"heading-max-words": "layout.heading_max_words",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		layout, err := config.Layout(viper.GetViper())
		if err != nil {
			return err
		}

		_, err = compose.NewBuilder(layout, logger).Build(args[0], output)
		return err
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringP("output", "o", "", "path to output Word document (default: input name with .docx)")
	f.String("font", "", "body font name (default Calibri)")
	f.Float64("font-size", 0, "body font size in points (default 11)")
	f.Int("heading-max-words", 0, "longest paragraph, in words, treated as a heading (default 10)")

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docx-recase.yaml or ~/.config/docx-recase/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("Error creating Word document: %v", err)
		zap.L().Sync()
		os.Exit(1)
	}
}
