package style

import (
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/provision"
	"github.com/stretchr/testify/assert"
)

func TestStatusIndicator(t *testing.T) {
	assert.Equal(t, SuccessIndicator, StatusIndicator(provision.StatusOK))
	assert.Equal(t, ErrorIndicator, StatusIndicator(provision.StatusFailed))
	assert.Equal(t, SkippedIndicator, StatusIndicator(provision.StatusSkipped))
	assert.Contains(t, StatusIndicator(provision.StatusOK), "✓")
}

func TestStatusBadge(t *testing.T) {
	for _, s := range []provision.Status{provision.StatusOK, provision.StatusSkipped, provision.StatusFailed} {
		assert.Contains(t, StatusBadge(s), string(s))
		assert.NotNil(t, StatusStyle(s))
	}
	assert.NotNil(t, StatusStyle(provision.Status("other")))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "    x", Indent("x", 2))
}
