// Package markdown describes plans as markdown documents
package markdown

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/provision"
)

// Plan renders plan as a markdown document
func Plan(plan *provision.Plan) string {
	var b strings.Builder

	b.WriteString("# dotsetup plan\n\n")
	if plan.DotfilesRoot != "" {
		fmt.Fprintf(&b, "Dotfiles root: `%s`\n\n", plan.DotfilesRoot)
	}
	if plan.ConfigSource != "" {
		fmt.Fprintf(&b, "Config file: `%s`\n\n", plan.ConfigSource)
	}
	if plan.DryRun {
		b.WriteString("> Dry run: commands are logged, not executed.\n\n")
	}

	if len(plan.Steps) == 0 {
		b.WriteString("No steps selected.\n")
		return b.String()
	}

	for i, step := range plan.Steps {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, step.Name)
		if step.Description != "" {
			b.WriteString(step.Description + "\n\n")
		}
		for _, action := range step.Actions {
			fmt.Fprintf(&b, "- `%s`\n", action)
		}
		if len(step.Actions) > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
