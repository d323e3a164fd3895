package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for cdlc.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders v with major, minor and patch in different colors.
// Anything that is not MAJOR.MINOR.PATCH[-suffix] is returned as is.
func Colored(v string) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	majorColor := enabled(color.FgYellow)
	minorColor := enabled(color.FgGreen)
	patchColor := enabled(color.FgBlue)
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// enabled ignores color.NoColor: the caller already decided to colorize.
func enabled(fg color.Attribute) *color.Color {
	c := color.New(fg, color.Bold)
	c.EnableColor()
	return c
}

// Banner is the text printed by `cdlc version`.
func Banner(colored bool) string {
	v := Version
	if colored {
		v = Colored(v)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "cdlc %s\n", v)
	if GitCommit != "" {
		fmt.Fprintf(&sb, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, "built:  %s\n", BuildDate)
	}
	return sb.String()
}
