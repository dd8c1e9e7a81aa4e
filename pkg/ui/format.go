package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto automatically detects the appropriate format based on terminal capabilities
	FormatAuto Format = iota
	// FormatTerminal renders rich terminal output with colors and styling
	FormatTerminal
	// FormatText renders plain text output without any styling
	FormatText
	// FormatJSON renders machine-readable JSON output
	FormatJSON
	// FormatYAML renders machine-readable YAML output
	FormatYAML
)

// FormatNames lists the accepted --format values
var FormatNames = []string{"auto", "term", "text", "json", "yaml"}

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s (want one of %s)",
			s, strings.Join(FormatNames, ", "))
	}
}

// DetectFormat determines the appropriate output format based on environment and terminal capabilities
func DetectFormat(output io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	// Buffers and pipes get plain text
	file, ok := output.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(file).ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
