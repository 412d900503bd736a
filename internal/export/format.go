// Package export writes a pressure series to a document: a rendered chart
// (PNG or SVG) or the raw data (CSV or JSON).
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	PNG  Format = "png"
	SVG  Format = "svg"
	CSV  Format = "csv"
	JSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists every supported format.
var Formats = []Format{PNG, SVG, CSV, JSON}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from the file extension, falling back to
// def when there is none.
func FormatFromPath(path string, def Format) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return def, nil
	}
	return ParseFormat(ext)
}

// WithExt appends the format's extension when path has none.
func WithExt(path string, f Format) string {
	if filepath.Ext(path) != "" {
		return path
	}
	return path + "." + string(f)
}

func (f Format) IsChart() bool { return f == PNG || f == SVG }
