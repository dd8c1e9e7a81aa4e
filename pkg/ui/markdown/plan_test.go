package markdown

import (
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/provision"
	"github.com/stretchr/testify/assert"
)

func TestPlan(t *testing.T) {
	md := Plan(&provision.Plan{
		DotfilesRoot: "/home/me/dotfiles",
		ConfigSource: "/home/me/.config/dotsetup/config.toml",
		DryRun:       true,
		Steps: []provision.PlanStep{
			{Name: "kernel", Description: "Check for kernel updates", Actions: []string{"apt list --upgradable"}},
			{Name: "copy:fonts", Description: "Copy fonts"},
		},
	})

	assert.Contains(t, md, "# dotsetup plan")
	assert.Contains(t, md, "Dotfiles root: `/home/me/dotfiles`")
	assert.Contains(t, md, "Config file: `/home/me/.config/dotsetup/config.toml`")
	assert.Contains(t, md, "> Dry run")
	assert.Contains(t, md, "## 1. kernel\n\nCheck for kernel updates\n\n- `apt list --upgradable`\n")
	assert.Contains(t, md, "## 2. copy:fonts")
}

func TestPlan_Empty(t *testing.T) {
	md := Plan(&provision.Plan{})
	assert.Contains(t, md, "No steps selected.")
	assert.NotContains(t, md, "Dry run")
}
