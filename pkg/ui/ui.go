// Package ui provides a unified interface for rendering output in different formats.
// It supports terminal (rich), text (plain), JSON and YAML output formats.
package ui

import (
	"io"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/provision"
	"github.com/arthur-debert/dotsetup/pkg/ui/json"
	"github.com/arthur-debert/dotsetup/pkg/ui/terminal"
	"github.com/arthur-debert/dotsetup/pkg/ui/text"
	"github.com/arthur-debert/dotsetup/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderReport renders the outcome of a pipeline run
	RenderReport(report *provision.Report) error

	// RenderPlan renders the steps a run would perform
	RenderPlan(plan *provision.Plan) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

var (
	_ Renderer = (*terminal.Renderer)(nil)
	_ Renderer = (*text.Renderer)(nil)
	_ Renderer = (*json.Renderer)(nil)
	_ Renderer = (*yaml.Renderer)(nil)
)
