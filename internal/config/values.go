package config

import (
	"strings"
)

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
