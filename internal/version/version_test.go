package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredWithoutColor(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	if got := Colored(); got != Version {
		t.Errorf("expected %q with colors disabled, got %q", Version, got)
	}
}
