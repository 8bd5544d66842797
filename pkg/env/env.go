// Package env reads process environment variables with fallbacks. Service
// configuration goes through envconfig; this covers the handful of values
// needed before the config layer is up, such as the logger's service name.
package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of the given environment variable, or the
// fallback when the variable is unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
