// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/pixie/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu          sync.RWMutex      // Protects the maps below
	plugins     map[string]Plugin // Store loaded plugins by name
	initialized map[string]bool   // Plugins whose Initialize succeeded
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins:     make(map[string]Plugin),
		initialized: make(map[string]bool),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	// Names double as config section keys, so they must be unique.
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// sorted returns plugins in name order so startup is deterministic.
func (m *Manager) sorted() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Plugin, 0, len(names))
	for _, name := range names {
		out = append(out, m.plugins[name])
	}
	return out
}

// InitializePlugins calls Initialize on every registered plugin. A failing
// plugin is logged and skipped; it will not be shut down later.
func (m *Manager) InitializePlugins(api EditorAPI) {
	pluginsToInit := m.sorted()

	logger.Infof("Plugin Manager: Initializing %d plugins...", len(pluginsToInit))
	for _, plugin := range pluginsToInit {
		// Initialize runs without the manager lock: plugins register
		// commands and subscribe to events from inside it.
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			continue
		}
		m.mu.Lock()
		m.initialized[plugin.Name()] = true
		m.mu.Unlock()
		logger.Debugf("Plugin Manager: Successfully initialized plugin '%s'", plugin.Name())
	}
}

// ShutdownPlugins calls Shutdown on all initialized plugins.
func (m *Manager) ShutdownPlugins() {
	pluginsToShutdown := m.sorted()

	logger.Infof("Plugin Manager: Shutting down plugins...")
	for _, plugin := range pluginsToShutdown {
		m.mu.Lock()
		ok := m.initialized[plugin.Name()]
		delete(m.initialized, plugin.Name()) // A second call is a no-op
		m.mu.Unlock()
		if !ok {
			continue
		}
		// Keep going on errors so every plugin gets its chance to clean up.
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name. Use cautiously.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
