package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	// Default configuration values
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically writes the session snapshot to the default save
// location while it has unsaved changes.
type AutoSave struct {
	api plugin.EditorAPI // To interact with the editor

	// Configuration
	mutex    sync.RWMutex // Protects access to config fields below
	enabled  bool
	interval time.Duration

	// Runtime state
	stopChan chan struct{}  // Signals the saver goroutine to stop
	wg       sync.WaitGroup // Waits for the goroutine to finish
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		// Initialize with defaults, config will override in Initialize
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and starts the auto-save loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	logger.Debugf("%s: Initializing...", pluginName)

	// --- Read Configuration ---
	p.mutex.Lock() // Lock for writing config initially

	// Read 'enabled' flag
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	} else {
		logger.Debugf("%s: Config 'enabled' not found, using default (%v)", pluginName, p.enabled)
	}

	// Read 'interval': the app passes a time.Duration, hand-written
	// configs may pass a duration string.
	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		switch v := intervalVal.(type) {
		case time.Duration:
			p.setInterval(v, v.String())
		case string:
			parsedInterval, err := time.ParseDuration(v)
			if err != nil {
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, v, err, p.interval)
			} else {
				p.setInterval(parsedInterval, v)
			}
		default:
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	} else {
		logger.Debugf("%s: Config 'interval' not found, using default (%v)", pluginName, p.interval)
	}

	isEnabled := p.enabled // Read locked value
	interval := p.interval
	p.mutex.Unlock() // Unlock after reading/setting config

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)

	// --- Start Saver Goroutine ---
	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1) // Increment wait group counter
		go p.saverLoop(interval)
		logger.Debugf("%s: Saver goroutine started.", pluginName)
	}
	return nil
}

// setInterval must be called with mutex held.
func (p *AutoSave) setInterval(d time.Duration, raw string) {
	if d <= 0 {
		logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", p.Name(), raw, p.interval)
		return
	}
	p.interval = d
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		logger.Debugf("%s: Shutting down...", p.Name())
		close(p.stopChan) // Signal the goroutine to stop
		p.wg.Wait()       // Wait for the goroutine to finish
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

// saverLoop is the main loop for the auto-save functionality.
func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done() // Decrement wait group counter when goroutine exits

	// Use a ticker for periodic checks
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Timer ticked, check if save is needed
			p.saveIfModified()
		case <-p.stopChan:
			// Shutdown signal received
			logger.Debugf("%s: Received stop signal, exiting saver loop.", p.Name())
			return
		}
	}
}

// saveIfModified writes the snapshot when there are unsaved edits.
// Failures are logged and retried on the next tick.
func (p *AutoSave) saveIfModified() {
	// Config is read-only after Initialize, so no lock here.
	if !p.api.IsModified() {
		logger.Debugf("%s: Session not modified, skipping auto-save.", p.Name())
		return
	}

	// An empty path saves to the file last saved or loaded, else the
	// configured default.
	path, err := p.api.SaveSnapshot("")
	if err != nil {
		logger.Errorf("%s: Auto-save failed: %v", p.Name(), err)
		// Not shown on the status bar; it would repeat every tick.
		return
	}
	logger.Debugf("%s: Auto-saved to '%s'", p.Name(), path)
}
