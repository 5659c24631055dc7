package report

import "errors"

var (
	// ErrUnknownFormat is returned by ParseFormat for unsupported names.
	ErrUnknownFormat = errors.New("unknown report format")

	// ErrReportRequired is returned when a renderer is given a nil report.
	ErrReportRequired = errors.New("report required")
)
