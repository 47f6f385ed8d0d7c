package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// validateConfig checks every section and reports all problems at once.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateFrame(config)...)
	validationErrors = append(validationErrors, validateStorage(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateDemo(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateFrame(config *Config) []string {
	var validationErrors []string
	f := config.Frame
	if f.InitialX < 0 || f.InitialY < 0 {
		validationErrors = append(validationErrors, "frame.initial_x and frame.initial_y must be non-negative")
	}
	if f.DragThreshold < 0 {
		validationErrors = append(validationErrors, "frame.drag_threshold must be non-negative")
	}
	if f.AnchorMargin < 0 {
		validationErrors = append(validationErrors, "frame.anchor_margin must be non-negative")
	}
	if f.TransitionMS < 0 {
		validationErrors = append(validationErrors, "frame.transition_ms must be non-negative")
	}
	if f.TouchDebounceMS < 0 {
		validationErrors = append(validationErrors, "frame.touch_debounce_ms must be non-negative")
	}
	return validationErrors
}

func validateStorage(config *Config) []string {
	if strings.Contains(config.Storage.KeyPrefix, ":") {
		return []string{"storage.key_prefix must not contain ':'"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not a valid level", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format %q must be console or json", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}

func validateDemo(config *Config) []string {
	var validationErrors []string
	seen := make(map[string]bool, len(config.Demo.Frames))

	for i, f := range config.Demo.Frames {
		field := fmt.Sprintf("demo.frames[%d]", i)
		if f.ID == "" {
			validationErrors = append(validationErrors, field+".id is required")
			continue
		}
		if seen[f.ID] {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.id %q is used by another frame", field, f.ID))
		}
		seen[f.ID] = true

		if f.Width < 1 || f.Height < 1 {
			validationErrors = append(validationErrors, field+" width and height must be at least 1")
		}
		if err := f.FrameOptions(config.Frame).Validate(); err != nil && !errors.Is(err, entity.ErrFrameIDRequired) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s: %v", field, err))
		}
	}
	return validationErrors
}
