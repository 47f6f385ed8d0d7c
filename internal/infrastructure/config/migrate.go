package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Migrator compares a user config file with the defaults and fills in the
// keys the file does not set yet.
type Migrator struct {
	file         string
	defaultViper *viper.Viper
}

// NewMigrator creates a migrator for the config file at path.
func NewMigrator(path string) *Migrator {
	v := viper.New()
	v.SetConfigType("toml")

	m := &Manager{viper: v}
	m.setDefaults()

	return &Migrator{file: path, defaultViper: v}
}

// MissingKeys returns the default keys absent from the config file, sorted.
// A missing file reports nothing; it is created with every default on load.
func (m *Migrator) MissingKeys() ([]string, error) {
	if _, err := os.Stat(m.file); os.IsNotExist(err) {
		return nil, nil
	}

	userKeys, err := m.userKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	var missing []string
	for _, key := range m.defaultViper.AllKeys() {
		// Paths are derived from XDG when empty.
		if key == "storage.path" || key == "logging.log_dir" {
			continue
		}
		if !userKeys[key] {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing, nil
}

// Migrate rewrites the config file with the missing keys set to their
// defaults and returns the keys it added.
func (m *Migrator) Migrate() ([]string, error) {
	missing, err := m.MissingKeys()
	if err != nil || len(missing) == 0 {
		return nil, err
	}

	mgr, err := NewManagerForFile(m.file)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}

	cfg := mgr.Get()
	// Keep derived paths derived.
	defaults := DefaultConfig()
	cfg.Storage.Path = defaults.Storage.Path
	cfg.Logging.LogDir = defaults.Logging.LogDir

	if err := WriteConfigOrdered(cfg, m.file); err != nil {
		return nil, err
	}
	return missing, nil
}

// FormatMissing renders added keys with their default values as a diff.
func (m *Migrator) FormatMissing(keys []string) string {
	if len(keys) == 0 {
		return "No changes detected."
	}

	var sb strings.Builder
	sb.WriteString("Config migration changes:\n\n")
	for _, key := range keys {
		fmt.Fprintf(&sb, "  + %s = %v\n", key, m.defaultViper.Get(key))
	}
	return sb.String()
}

func (m *Migrator) userKeys() (map[string]bool, error) {
	data, err := os.ReadFile(m.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	keys := make(map[string]bool)
	flattenKeys(raw, "", keys)
	return keys, nil
}

func flattenKeys(data map[string]any, prefix string, keys map[string]bool) {
	for k, v := range data {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := v.(map[string]any); ok {
			flattenKeys(nested, key, keys)
			continue
		}
		keys[key] = true
	}
}
