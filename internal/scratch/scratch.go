// Package scratch manages per-conversion temporary files in a single
// managed directory. Each conversion owns its own uniquely named files;
// the directory is shared across concurrent conversions without locking.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager allocates and cleans up scratch files in a managed directory.
type Manager struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewManager creates the managed directory if absent. A directory that
// cannot be created is a startup failure: the service cannot convert
// anything without scratch space.
func NewManager(dir string, logger *zap.SugaredLogger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir %s: %w", dir, err)
	}
	return &Manager{dir: dir, logger: logger}, nil
}

// Dir returns the managed directory.
func (m *Manager) Dir() string {
	return m.dir
}

// CreatePath reserves a unique file name inside the managed directory.
// The file itself is not created on disk.
func (m *Manager) CreatePath(ext string) string {
	return filepath.Join(m.dir, uuid.NewString()+ext)
}

// WriteFile creates or overwrites the file at path.
func (m *Manager) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write scratch file %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the file at path.
func (m *Manager) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scratch file %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether the file at path exists on disk.
func (m *Manager) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes the file at path best-effort. Deletion failure is logged
// and swallowed so cleanup never masks the outcome of a conversion.
func (m *Manager) Remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		m.logger.Warnw("failed to remove scratch file", "path", path, "error", err)
	}
}
