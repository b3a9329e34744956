// Package infra implements infrastructure concerns (probe, storage, paths).
package infra

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Paths holds filesystem locations based on the effective user.
type Paths struct {
	DataDir      string // Where the key-value store and key live
	ConfigPath   string // Default YAML config location
	LogPath      string // Daemon log output
	ErrorLogPath string // Daemon error output
	IsRoot       bool
}

// DetectPaths determines locations based on effective UID.
func DetectPaths() *Paths {
	if os.Geteuid() == 0 {
		return &Paths{
			DataDir:      "/var/lib/netmon",
			ConfigPath:   "/etc/netmon/config.yaml",
			LogPath:      "/var/log/netmon.log",
			ErrorLogPath: "/var/log/netmon.error.log",
			IsRoot:       true,
		}
	}
	return PathsForHome(GetRealUserHome())
}

// PathsForHome returns user-mode paths rooted at home.
func PathsForHome(home string) *Paths {
	dataDir := filepath.Join(home, ".netmon")
	return &Paths{
		DataDir:      dataDir,
		ConfigPath:   filepath.Join(dataDir, "config.yaml"),
		LogPath:      filepath.Join(dataDir, "netmon.log"),
		ErrorLogPath: filepath.Join(dataDir, "netmon.error.log"),
		IsRoot:       os.Geteuid() == 0,
	}
}

// GetRealUserHome returns the real user's home directory, even when running under sudo.
func GetRealUserHome() string {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		if u, err := user.Lookup(sudoUser); err == nil {
			return u.HomeDir
		}
	}
	home, _ := os.UserHomeDir()
	return home
}

// ExpandHome expands a leading ~ to the given home directory.
func ExpandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		return home
	}
	return path
}
