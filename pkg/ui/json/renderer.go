// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/provision"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderReport renders the run report as JSON
func (r *Renderer) RenderReport(report *provision.Report) error {
	return r.encoder.Encode(report)
}

// RenderPlan renders the plan as JSON
func (r *Renderer) RenderPlan(plan *provision.Plan) error {
	return r.encoder.Encode(plan)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]interface{}{
		"error":   err.Error(),
		"code":    string(errors.GetErrorCode(err)),
		"details": errors.GetErrorDetails(err),
	})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
