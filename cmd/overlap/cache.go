package main

import (
	"fmt"

	"github.com/poiesic/overlap/storage/badger"
	"github.com/urfave/cli/v2"
)

func purgeCommand(c *cli.Context) error {
	dir := c.String("cache-dir")
	backend, err := badger.OpenBackend(dir, false)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer backend.Close()

	cache := badger.NewVectorCacheWithBackend(backend)

	if model := c.String("model"); model != "" {
		if err := cache.PurgeModel(c.Context, model); err != nil {
			return fmt.Errorf("failed to purge cache: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "Purged cached vectors of %s\n", model)
		return nil
	}

	count, err := cache.Purge(c.Context)
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Purged %d cached vectors\n", count)
	return nil
}
