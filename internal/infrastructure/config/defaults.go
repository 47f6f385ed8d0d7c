package config

import (
	"time"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// Default configuration constants
const (
	// Frame defaults are in terminal cells.
	defaultInitialX          = 2
	defaultInitialY          = 1
	defaultDragThreshold     = entity.DefaultDragThreshold
	defaultAnchorMargin      = entity.DefaultAnchorMargin
	defaultTransitionMS      = int(entity.DefaultTransitionDuration / time.Millisecond)
	defaultLayer             = entity.DefaultLayer
	defaultTouchDebounceMS   = int(entity.DefaultTouchDebounce / time.Millisecond)
	defaultAnchoredDragStart = AnchoredDragStartImmediate

	// Storage defaults
	defaultKeyPrefix = "dragframe"

	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Frame: FrameConfig{
			InitialX:          defaultInitialX,
			InitialY:          defaultInitialY,
			DragThreshold:     defaultDragThreshold,
			AnchorMargin:      defaultAnchorMargin,
			TransitionMS:      defaultTransitionMS,
			Layer:             defaultLayer,
			Anchored:          false,
			AnchoredDragStart: defaultAnchoredDragStart,
			TouchDebounceMS:   defaultTouchDebounceMS,
		},
		Storage: StorageConfig{
			Backend:   StorageBackendSQLite,
			KeyPrefix: defaultKeyPrefix,
		},
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
		Demo: DemoConfig{
			Backend: DemoBackendTea,
			Frames:  defaultDemoFrames(),
		},
	}
}

func defaultDemoFrames() []DemoFrameConfig {
	anchored := true
	return []DemoFrameConfig{
		{
			ID:     "notes",
			Title:  "Notes",
			Body:   "Drag me around.\nClick to count clicks.",
			Width:  28,
			Height: 6,
			X:      4,
			Y:      2,
		},
		{
			ID:       "dock",
			Title:    "Dock",
			Body:     "I rest against\nthe nearest edge.",
			Width:    22,
			Height:   6,
			X:        40,
			Y:        8,
			Layer:    defaultLayer + 1,
			Anchored: &anchored,
		},
	}
}
