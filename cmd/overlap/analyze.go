package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/poiesic/overlap"
	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/ingestion"
	"github.com/poiesic/overlap/report"
	"github.com/urfave/cli/v2"
)

func analyzeCommand(c *cli.Context) error {
	ctx := c.Context

	settings, err := loadSettings(c)
	if err != nil {
		return err
	}

	dir := c.String("dir")
	docs, err := ingestion.LoadDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	var opts []overlap.Option
	if !c.Bool("quiet") {
		opts = append(opts, overlap.WithPipelineOptions(ingestion.WithProgress(c.App.ErrWriter)))
	}
	analyzer, err := overlap.Open(settings, opts...)
	if err != nil {
		return fmt.Errorf("failed to open analyzer: %w", err)
	}
	defer analyzer.Close()

	slog.Info("analyzing documents", "dir", dir, "documents", len(docs), "cache", settings.CacheDir)

	result, err := analyzer.Analyze(ctx, docs)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if path := c.String("scores"); path != "" {
		if err := writeScores(path, result.Scores); err != nil {
			return fmt.Errorf("failed to write scores: %w", err)
		}
	}

	rep := report.New(result.Ranking,
		report.WithStrategies(analyzer.Strategies()),
		report.WithDocuments(len(docs)),
	)
	return render(c, settings.Format, rep)
}

func writeScores(path string, scores []*core.ScoreMap) error {
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// render writes rep to --output, or to the app writer when it is unset.
func render(c *cli.Context, format string, rep *report.Report) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	renderer, err := report.RendererFor(f)
	if err != nil {
		return err
	}

	var w io.Writer = c.App.Writer
	if path := c.String("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := renderer.Render(w, rep); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if path := c.String("output"); path != "" {
		fmt.Fprintf(c.App.ErrWriter, "Report written to %s\n", path)
	}
	return nil
}
