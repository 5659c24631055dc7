package fusion

import "errors"

var (
	// ErrNoScoreMaps is returned when Fuse is called without input.
	ErrNoScoreMaps = errors.New("at least one score map required")

	// ErrDuplicateStrategy is returned when a blend names a strategy twice.
	ErrDuplicateStrategy = errors.New("duplicate strategy in blend")

	// ErrStrategyMissing is returned when no score map was produced for a blended strategy.
	ErrStrategyMissing = errors.New("no score map for strategy")
)
