package report

import (
	"fmt"
	"io"
	"strings"
)

// Format names a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatPDF}

// Renderer writes a report in one format.
type Renderer interface {
	Render(w io.Writer, r *Report) error
}

// ParseFormat accepts a format name in any case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// RendererFor returns the renderer of f.
func RendererFor(f Format) (Renderer, error) {
	switch f {
	case FormatText:
		return NewText(), nil
	case FormatJSON:
		return JSON{}, nil
	case FormatPDF:
		return PDF{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
