package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	file      string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager reading config.toml from the XDG config
// directory, falling back to the current directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	return &Manager{
		viper:     v,
		file:      filepath.Join(configDir, "config.toml"),
		callbacks: make([]func(*Config), 0),
	}, nil
}

// NewManagerForFile creates a manager bound to an explicit config file.
func NewManagerForFile(path string) (*Manager, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	return &Manager{
		viper:     v,
		file:      path,
		callbacks: make([]func(*Config), 0),
	}, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// DRAGFRAME_FRAME_DRAG_THRESHOLD, DRAGFRAME_STORAGE_BACKEND, ...
	v.SetEnvPrefix("DRAGFRAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Same names the logger reads before any config is loaded.
	_ = v.BindEnv("logging.level", "DRAGFRAME_LOG_LEVEL")
	_ = v.BindEnv("logging.format", "DRAGFRAME_LOG_FORMAT")

	return v
}

// Load reads the config file (creating a default one if missing) and
// environment overrides, then normalizes and validates the result.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile = m.file
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.file,
			createErr,
		)
	}
	m.viper.SetConfigFile(m.file)
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf(
			"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
			rereadErr,
		)
	}
	return nil
}

// decode unmarshals, fills derived paths, normalizes and validates.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensurePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensurePaths(config *Config) error {
	if config.Storage.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Storage.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	return nil
}

func normalizeConfig(config *Config) {
	switch StorageBackend(strings.ToLower(string(config.Storage.Backend))) {
	case StorageBackendMemory:
		config.Storage.Backend = StorageBackendMemory
	default:
		config.Storage.Backend = StorageBackendSQLite
	}

	switch AnchoredDragStart(strings.ToLower(string(config.Frame.AnchoredDragStart))) {
	case AnchoredDragStartThreshold:
		config.Frame.AnchoredDragStart = AnchoredDragStartThreshold
	default:
		config.Frame.AnchoredDragStart = AnchoredDragStartImmediate
	}

	switch DemoBackend(strings.ToLower(string(config.Demo.Backend))) {
	case DemoBackendTcell:
		config.Demo.Backend = DemoBackendTcell
	default:
		config.Demo.Backend = DemoBackendTea
	}

	config.Storage.KeyPrefix = strings.TrimSpace(config.Storage.KeyPrefix)
	if config.Storage.KeyPrefix == "" {
		config.Storage.KeyPrefix = defaultKeyPrefix
	}
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	if len(config.Demo.Frames) == 0 {
		config.Demo.Frames = defaultDemoFrames()
	}
	for i := range config.Demo.Frames {
		config.Demo.Frames[i].ID = strings.TrimSpace(config.Demo.Frames[i].ID)
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Demo.Frames = append([]DemoFrameConfig(nil), m.config.Demo.Frames...)
	return &configCopy
}

// GetConfigFile returns the path of the configuration file.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.file
}

// createDefaultConfig writes the default configuration and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.file), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), m.file); err != nil {
		return err
	}
	if err := WriteSchemaFile(filepath.Join(filepath.Dir(m.file), schemaFileName)); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", m.file)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setFrameDefaults(defaults)
	m.setStorageDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.setDemoDefaults(defaults)
}

func (m *Manager) setFrameDefaults(defaults *Config) {
	m.viper.SetDefault("frame.initial_x", defaults.Frame.InitialX)
	m.viper.SetDefault("frame.initial_y", defaults.Frame.InitialY)
	m.viper.SetDefault("frame.drag_threshold", defaults.Frame.DragThreshold)
	m.viper.SetDefault("frame.anchor_margin", defaults.Frame.AnchorMargin)
	m.viper.SetDefault("frame.transition_ms", defaults.Frame.TransitionMS)
	m.viper.SetDefault("frame.layer", defaults.Frame.Layer)
	m.viper.SetDefault("frame.anchored", defaults.Frame.Anchored)
	m.viper.SetDefault("frame.anchored_drag_start", string(defaults.Frame.AnchoredDragStart))
	m.viper.SetDefault("frame.touch_debounce_ms", defaults.Frame.TouchDebounceMS)
}

func (m *Manager) setStorageDefaults(defaults *Config) {
	m.viper.SetDefault("storage.backend", string(defaults.Storage.Backend))
	m.viper.SetDefault("storage.path", defaults.Storage.Path)
	m.viper.SetDefault("storage.key_prefix", defaults.Storage.KeyPrefix)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

func (m *Manager) setDemoDefaults(defaults *Config) {
	m.viper.SetDefault("demo.backend", string(defaults.Demo.Backend))
}
