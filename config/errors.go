package config

import "errors"

var (
	// ErrInvalidConfig wraps every validation failure other than the weight sum.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig wraps failures reading the file or environment.
	ErrLoadConfig = errors.New("load config failed")
)
