package overlap

import "errors"

var (
	// ErrPipelineRequired indicates a nil ingestion pipeline was supplied.
	ErrPipelineRequired = errors.New("ingestion pipeline is required")

	// ErrBlendRequired indicates no strategy blend was supplied.
	ErrBlendRequired = errors.New("strategy blend is required")

	// ErrSettingsRequired indicates Open was called without settings.
	ErrSettingsRequired = errors.New("settings are required")

	// ErrAnalyzerClosed indicates Analyze was called after Close.
	ErrAnalyzerClosed = errors.New("analyzer is closed")
)
