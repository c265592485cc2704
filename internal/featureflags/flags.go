package featureflags

import (
	"os"
	"strings"
)

// Enabled returns true if a flag is enabled via environment variable.
// Flags are read from env as FLAG_<NAME>=true/1/yes (case-insensitive).
func Enabled(name string) bool {
	return truthy(os.Getenv("FLAG_" + strings.ToUpper(name)))
}

// Disabled is for flags that default to on: it returns true only when the
// flag is explicitly set to an off value.
func Disabled(name string) bool {
	v := os.Getenv("FLAG_" + strings.ToUpper(name))
	if v == "" {
		return false
	}
	return !truthy(v)
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
