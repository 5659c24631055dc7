package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/ranking"
	"github.com/poiesic/overlap/report"
	"github.com/urfave/cli/v2"
)

func fuseCommand(c *cli.Context) error {
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	blend, err := settings.Blend()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read scores: %w", err)
	}
	var maps []*core.ScoreMap
	if err := json.Unmarshal(data, &maps); err != nil {
		return fmt.Errorf("failed to decode scores: %w", err)
	}

	composite, err := blend.Fuse(maps)
	if err != nil {
		return fmt.Errorf("fusion failed: %w", err)
	}
	ranked := ranking.Rank(composite,
		ranking.WithTopK(settings.TopK),
		ranking.WithThreshold(settings.Threshold),
	)

	rep := report.New(ranked,
		report.WithStrategies(blend.Strategies()),
		report.WithDocuments(countIdentities(composite)),
	)
	return render(c, settings.Format, rep)
}

func countIdentities(composite *core.CompositeScoreMap) int {
	seen := make(map[core.Identity]struct{})
	for _, e := range composite.Entries() {
		seen[e.Key.First] = struct{}{}
		seen[e.Key.Second] = struct{}{}
	}
	return len(seen)
}
