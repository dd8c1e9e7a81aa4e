package style

import (
	"github.com/arthur-debert/dotsetup/pkg/provision"
	"github.com/pterm/pterm"
)

// StatusStyle returns the pterm badge style for a step status
func StatusStyle(status provision.Status) *pterm.Style {
	switch status {
	case provision.StatusOK:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case provision.StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case provision.StatusSkipped:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusIndicator returns the symbol shown next to a step
func StatusIndicator(status provision.Status) string {
	switch status {
	case provision.StatusOK:
		return SuccessIndicator
	case provision.StatusFailed:
		return ErrorIndicator
	default:
		return SkippedIndicator
	}
}

// StatusBadge renders the status word padded to a fixed width
func StatusBadge(status provision.Status) string {
	return StatusStyle(status).Sprintf(" %-7s ", string(status))
}
