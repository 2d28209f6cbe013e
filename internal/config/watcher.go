package config

import (
	"os"
	"sync"
	"time"
)

// ConfigWatcher polls a config file and reports valid changes.
type ConfigWatcher struct {
	filePath     string
	pollInterval time.Duration
	debounce     time.Duration
	lastModTime  time.Time
	lastSize     int64
	lastConfig   *Config
	onChange     func(oldCfg, newCfg *Config)
	onError      func(error)
	stopCh       chan struct{}
	stoppedCh    chan struct{}
	mu           sync.Mutex
	running      bool
}

// WatcherConfig holds config watcher configuration.
type WatcherConfig struct {
	FilePath     string
	PollInterval time.Duration // Default: 1s
	Debounce     time.Duration // Default: 200ms
	OnChange     func(oldCfg, newCfg *Config)
	// OnError receives reload failures. Optional.
	OnError func(error)
}

// NewConfigWatcher creates a new config file watcher.
func NewConfigWatcher(cfg *WatcherConfig) (*ConfigWatcher, error) {
	if cfg.FilePath == "" {
		return nil, ErrMissingConfigFile
	}
	if cfg.OnChange == nil {
		return nil, ErrMissingOnChange
	}

	pollInterval := cfg.PollInterval
	if pollInterval == 0 {
		pollInterval = time.Second
	}

	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = 200 * time.Millisecond
	}

	onError := cfg.OnError
	if onError == nil {
		onError = func(error) {}
	}

	info, err := os.Stat(cfg.FilePath)
	if err != nil {
		return nil, err
	}

	initialConfig, err := LoadConfig(cfg.FilePath)
	if err != nil {
		return nil, err
	}

	return &ConfigWatcher{
		filePath:     cfg.FilePath,
		pollInterval: pollInterval,
		debounce:     debounce,
		lastModTime:  info.ModTime(),
		lastSize:     info.Size(),
		lastConfig:   initialConfig,
		onChange:     cfg.OnChange,
		onError:      onError,
		stopCh:       make(chan struct{}),
		stoppedCh:    make(chan struct{}),
	}, nil
}

// Start begins watching the config file for changes.
func (w *ConfigWatcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.watchLoop()
}

// Stop stops watching and waits for the polling goroutine to exit.
// A stopped watcher cannot be restarted.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh
}

func (w *ConfigWatcher) watchLoop() {
	defer close(w.stoppedCh)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-ticker.C:
			changed, err := w.checkFileChanged()
			if err != nil {
				w.onError(err)
				continue
			}

			if changed {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.NewTimer(w.debounce)
				debounceCh = debounceTimer.C
			}

		case <-debounceCh:
			w.triggerReload()
			debounceTimer = nil
			debounceCh = nil
		}
	}
}

func (w *ConfigWatcher) checkFileChanged() (bool, error) {
	info, err := os.Stat(w.filePath)
	if err != nil {
		return false, err
	}

	modTime := info.ModTime()
	size := info.Size()

	if !modTime.Equal(w.lastModTime) || size != w.lastSize {
		w.lastModTime = modTime
		w.lastSize = size
		return true, nil
	}

	return false, nil
}

// triggerReload loads the new config and calls onChange when it is valid.
func (w *ConfigWatcher) triggerReload() {
	newConfig, err := LoadConfig(w.filePath)
	if err != nil {
		w.onError(err)
		return
	}

	if errs := ValidateConfig(newConfig); len(errs) > 0 {
		w.onError(errs[0])
		return
	}

	w.mu.Lock()
	oldConfig := w.lastConfig
	w.lastConfig = newConfig
	w.mu.Unlock()

	w.onChange(oldConfig, newConfig)
}

// IsRunning returns true if the watcher is running.
func (w *ConfigWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// GetCurrentConfig returns the last loaded config.
func (w *ConfigWatcher) GetCurrentConfig() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastConfig
}
