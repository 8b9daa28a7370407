// Package clipboard moves snapshot documents between the editor and the
// system clipboard.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/pixie/internal/logger"
)

// ErrEmpty is returned by Read when there is nothing to paste.
var ErrEmpty = errors.New("clipboard is empty")

// Backend is the system clipboard. atotto/clipboard is the default.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemBackend struct{}

func (systemBackend) ReadAll() (string, error) { return clipboard.ReadAll() }
func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Manager handles clipboard operations. It always keeps an internal copy
// so paste works when the system clipboard is disabled or unavailable.
type Manager struct {
	mutex    sync.Mutex
	backend  Backend // nil when the system clipboard is not used
	internal []byte
}

// NewManager creates a clipboard manager. useSystem selects the system
// clipboard when the platform supports it.
func NewManager(useSystem bool) *Manager {
	m := &Manager{}
	if useSystem {
		if clipboard.Unsupported {
			logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
		} else {
			m.backend = systemBackend{}
		}
	}
	return m
}

// NewManagerWithBackend is used by tests and alternative front ends.
func NewManagerWithBackend(b Backend) *Manager {
	return &Manager{backend: b}
}

// Write stores data internally and, when enabled, on the system clipboard.
// A failing system clipboard is logged, not returned.
func (m *Manager) Write(data []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.internal = append([]byte(nil), data...)
	if m.backend == nil {
		return
	}
	if err := m.backend.WriteAll(string(data)); err != nil {
		logger.Warnf("Clipboard: system write failed, kept internal copy: %v", err)
		return
	}
	logger.DebugTagf("clipboard", "Copied %d bytes", len(data))
}

// Read returns the system clipboard when it has content, else the
// internal copy.
func (m *Manager) Read() ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.backend != nil {
		text, err := m.backend.ReadAll()
		if err == nil && text != "" {
			return []byte(text), nil
		}
		if err != nil {
			logger.Warnf("Clipboard: system read failed, using internal copy: %v", err)
		}
	}
	if len(m.internal) == 0 {
		return nil, ErrEmpty
	}
	return append([]byte(nil), m.internal...), nil
}
