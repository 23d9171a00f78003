// Package version carries the build identity stamped into the stackless
// binary.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Overridable at build time:
//
//	-ldflags "-X stackless/internal/version.GitCommit=<sha>"
var (
	// Version is the tool's semantic version, pre-release suffix included.
	Version = "0.1.0-dev"

	// GitCommit is the commit the binary was built from, when stamped.
	GitCommit = ""

	// BuildDate is the build timestamp in ISO-8601, when stamped.
	BuildDate = ""
)

var componentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with each dotted component highlighted, for
// terminal banners. A pre-release suffix stays plain. With colors disabled
// the result equals Version.
func Colored() string {
	base, suffix, found := strings.Cut(Version, "-")
	parts := strings.Split(base, ".")
	for i, p := range parts {
		if i < len(componentColors) {
			parts[i] = componentColors[i].Sprint(p)
		}
	}
	out := strings.Join(parts, ".")
	if found {
		out += "-" + suffix
	}
	return out
}
