package config

import (
	"os"
	"strings"
)

// AuditorEnabled gates the text-generation audit endpoint.
//
// Set via env:
// - AUDITOR_ENABLED=false
//
// Defaults to enabled.
func AuditorEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("AUDITOR_ENABLED")))
	if v == "" {
		return true
	}
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
