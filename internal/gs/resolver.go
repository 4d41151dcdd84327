// Package gs locates the Ghostscript executable at startup. The resolved
// tool is immutable for the process lifetime; if no candidate exists the
// service refuses to start rather than failing on the first request.
package gs

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/openpdfa/openpdfa/internal/config"
)

// Tool is the resolved, process-wide Ghostscript configuration.
type Tool struct {
	Path     string
	BaseArgs string
	Timeout  time.Duration
}

// Resolve locates the gs binary. Resolution order, first match wins:
//  1. Explicitly configured path, if the file exists.
//  2. Version-templated install path built from the configured version.
//  3. The platform's default install path.
//  4. PATH lookup of the platform binary name.
func Resolve(cfg *config.Config) (*Tool, error) {
	path, err := resolvePath(cfg.GSPath, cfg.GSVersion)
	if err != nil {
		return nil, err
	}
	return &Tool{
		Path:     path,
		BaseArgs: cfg.GSArgs,
		Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

func resolvePath(explicit, version string) (string, error) {
	if explicit != "" {
		if fileExists(explicit) {
			return explicit, nil
		}
		// Missing configured path falls through to discovery.
	}

	if version != "" {
		if p := VersionedPath(version); fileExists(p) {
			return p, nil
		}
	}

	if p := DefaultPath(); fileExists(p) {
		return p, nil
	}

	if p, err := exec.LookPath(BinaryName()); err == nil && fileExists(p) {
		return p, nil
	}

	return "", fmt.Errorf("ghostscript executable not found (checked configured path, %s install locations and PATH); set OPENPDFA_GS_PATH", runtime.GOOS)
}

// BinaryName returns the platform's Ghostscript binary name.
func BinaryName() string {
	if runtime.GOOS == "windows" {
		return "gswin64c"
	}
	return "gs"
}

// VersionedPath builds the default install path for a given gs version.
func VersionedPath(version string) string {
	if runtime.GOOS == "windows" {
		return `C:\Program Files\gs\gs` + version + `\bin\gswin64c.exe`
	}
	return filepath.Join("/usr/local/ghostscript", version, "bin", "gs")
}

// DefaultPath is the hardcoded fallback install path.
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		return `C:\Program Files\gs\gs10.03.1\bin\gswin64c.exe`
	}
	return "/usr/bin/gs"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
