package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands $VAR and ${VAR} references in a configured path, then a
// leading "~" to the user's home directory. "~user" forms are left alone.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
