// Package yaml provides machine-readable YAML output
package yaml

import (
	"io"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/provision"
	"gopkg.in/yaml.v3"
)

// Renderer writes YAML documents, one per call
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// RenderReport renders the run report as YAML
func (r *Renderer) RenderReport(report *provision.Report) error {
	return r.encode(report)
}

// RenderPlan renders the plan as YAML
func (r *Renderer) RenderPlan(plan *provision.Plan) error {
	return r.encode(plan)
}

// RenderError renders an error as YAML
func (r *Renderer) RenderError(err error) error {
	return r.encode(map[string]interface{}{
		"error":   err.Error(),
		"code":    string(errors.GetErrorCode(err)),
		"details": errors.GetErrorDetails(err),
	})
}

// RenderMessage renders a simple message as YAML
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
