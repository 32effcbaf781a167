// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docx-recase/internal/cache"
	"github.com/pdiddy/docx-recase/internal/config"
	"github.com/pdiddy/docx-recase/internal/docx"
	"github.com/pdiddy/docx-recase/internal/recase"
)

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]
	output, _ := cmd.Flags().GetString("output")

	cfg, err := config.Process(viper.GetViper())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	log := logger.With("run", runID)

	paragraphs, err := docx.ReadParagraphs(input)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	client, err := recase.NewBedrockClient(ctx, cfg.Bedrock)
	if err != nil {
		return err
	}

	opts := []recase.Option{
		recase.WithLogger(log),
		recase.WithProgress(os.Stderr),
	}
	if cfg.CachePath != "" {
		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, recase.WithCache(store))
	}

	p := recase.NewProcessor(recase.NewBedrockBackend(client, cfg.Bedrock), cfg, opts...)

	if cmd.Flags().Changed("paragraph") {
		number, _ := cmd.Flags().GetInt("paragraph")
		text, err := p.ProcessParagraph(ctx, paragraphs, number)
		if err != nil {
			return err
		}
		if output == "" {
			fmt.Println(text)
			return nil
		}
		if err := os.WriteFile(output, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		log.Infof("Processed paragraph saved to %s", output)
		return nil
	}

	results, runErr := p.ProcessDocument(ctx, paragraphs)

	if err := writeOutput(output, results); err != nil {
		return err
	}
	if output != "" {
		log.Infof("Results saved to %s", output)
	}

	if cfg.ReportPath != "" {
		report := recase.NewReport(runID, input, cfg.Bedrock.ModelID, results)
		if err := recase.WriteReport(cfg.ReportPath, report); err != nil {
			return err
		}
		log.Infof("Run report saved to %s", cfg.ReportPath)
	}

	if runErr != nil {
		return fmt.Errorf("processing document: %w", runErr)
	}
	if s := recase.Summarize(results); s.HasFailures() {
		log.Warnf("%d of %d paragraph(s) failed and were left out of the output", s.Failed, s.Total)
	}
	return nil
}

// writeOutput writes results to path, or to stdout when path is empty.
func writeOutput(path string, results []recase.Result) error {
	if path == "" {
		return writeResults(os.Stdout, results)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeResults(f, results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func writeResults(w io.Writer, results []recase.Result) error {
	if err := recase.WriteResults(w, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
