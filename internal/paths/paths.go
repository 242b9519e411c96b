// Package paths resolves configuration, data, and image directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under the platform config and data roots.
const appName = "equipments"

// DefaultImageDirName is the image directory created inside the data directory.
const DefaultImageDirName = "images"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "EQUIPMENTS_CONFIG_DIR"
	EnvDataDir   = "EQUIPMENTS_DATA_DIR"
	EnvImageDir  = "EQUIPMENTS_IMAGE_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/equipments (fallback ~/.config/equipments)
// macOS:   ~/Library/Application Support/equipments
// Windows: %APPDATA%/equipments
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// DefaultDataDir returns the platform-specific application-private data directory.
//
// Linux:   $XDG_DATA_HOME/equipments (fallback ~/.local/share/equipments)
// macOS:   ~/Library/Application Support/equipments
// Windows: %APPDATA%/equipments
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > EQUIPMENTS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configValue > EQUIPMENTS_DATA_DIR env > DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvDataDir, DefaultDataDir)
}

// ResolveImageDir returns the image directory following the precedence chain:
// configValue > EQUIPMENTS_IMAGE_DIR env > <dataDir>/images.
func ResolveImageDir(configValue, dataDir string) (string, error) {
	return resolve("", configValue, EnvImageDir, func() (string, error) {
		return filepath.Abs(filepath.Join(dataDir, DefaultImageDirName))
	})
}

func resolve(flag, configValue, env string, fallback func() (string, error)) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if v := os.Getenv(env); v != "" {
		return filepath.Abs(v)
	}
	return fallback()
}
