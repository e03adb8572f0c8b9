package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chordpdf"

// ScriptName is the entry point of a ChordPro distribution.
const ScriptName = "chordpro.pl"

func DefaultConfigDirFor(goos, homeDir, xdgConfigHome, appData string) (string, error) {
	if homeDir == "" {
		return "", errors.New("home directory is empty")
	}

	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		if xdgConfigHome != "" {
			return filepath.Join(xdgConfigHome, appName), nil
		}
		return filepath.Join(homeDir, ".config", appName), nil
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appName), nil
	case "windows":
		if appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", goos)
	}
}

// DefaultConfigPath returns the config file location for the current user.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	dir, err := DefaultConfigDirFor(runtime.GOOS, homeDir, os.Getenv("XDG_CONFIG_HOME"), os.Getenv("APPDATA"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ScriptPathCandidates lists where a ChordPro distribution shipped next to
// the chordpdf binary may live, in lookup order.
func ScriptPathCandidates(executable string) []string {
	binDir := filepath.Dir(executable)
	return []string{
		filepath.Join(binDir, "..", "share", "chordpro", "script", ScriptName),
		filepath.Join(binDir, "..", "libexec", "chordpro", "script", ScriptName),
		filepath.Join(binDir, "chordpro", "script", ScriptName),
		filepath.Join(binDir, ScriptName),
	}
}

// FindSiblingScript returns the first existing candidate near executable.
func FindSiblingScript(executable string) (string, bool) {
	for _, candidate := range ScriptPathCandidates(executable) {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return filepath.Clean(candidate), true
		}
	}
	return "", false
}

// ScriptInHome resolves the script inside a CHORDPRO_HOME style checkout.
func ScriptInHome(home string) string {
	return filepath.Join(home, "script", ScriptName)
}
