// FILE: lixenwraith/hparams/discovery.go
package hparams

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryOptions configures automatic declaration file discovery
type DiscoveryOptions struct {
	// Base name of the file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	return DiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".yaml", ".yml", ".json", ".toml"},
		EnvVar:        envVarName(appName) + "_HPARAMS",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverFile returns the first existing declaration file.
// An explicit path in the environment variable wins, even if it does not exist,
// so that FromFile reports it.
func DiscoverFile(opts DiscoveryOptions) (string, bool) {
	// Check environment variable
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, true
		}
	}

	// Build search paths
	var searchPaths []string

	// Custom paths first
	searchPaths = append(searchPaths, opts.Paths...)

	// Current directory
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	// XDG paths
	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name)...)
	}

	// Search for the file
	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}

	return "", false
}

// getXDGConfigPaths returns the XDG directories searched for an application's
// parameter declaration file: $XDG_CONFIG_HOME/<app> (or ~/.config/<app>),
// then each $XDG_CONFIG_DIRS entry, falling back to /etc/xdg/<app> and /etc/<app>.
func getXDGConfigPaths(appName string) []string {
	var paths []string

	// XDG_CONFIG_HOME
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	// XDG_CONFIG_DIRS
	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		// Default system paths
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}

// envVarName converts an application name to an environment variable prefix
func envVarName(appName string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(appName))
}
