package similarity

import "errors"

var (
	// ErrStrategyNameRequired is returned when a strategy has no name.
	ErrStrategyNameRequired = errors.New("strategy name required")

	// ErrCompareRequired is returned when a strategy has no comparison function.
	ErrCompareRequired = errors.New("strategy comparison function required")

	// ErrInvalidWeight is returned when a strategy weight is outside [0, 1].
	ErrInvalidWeight = errors.New("strategy weight must be between 0 and 1")

	// ErrVectorSetMissing is returned by ScoreAll when a strategy has no vectors.
	ErrVectorSetMissing = errors.New("no vectors for strategy")
)
