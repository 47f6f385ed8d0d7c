package config

import (
	"time"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete configuration for dragframe.
type Config struct {
	// Frame holds the defaults applied to every frame.
	Frame FrameConfig `mapstructure:"frame" toml:"frame" json:"frame"`
	// Storage selects where frame positions are persisted.
	Storage StorageConfig `mapstructure:"storage" toml:"storage" json:"storage"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging"`
	// Demo describes the frames shown by `dragframe run`.
	Demo DemoConfig `mapstructure:"demo" toml:"demo" json:"demo"`
}

// FrameConfig holds frame behavior defaults. Distances are in cells.
type FrameConfig struct {
	InitialX float64 `mapstructure:"initial_x" toml:"initial_x" json:"initial_x" jsonschema:"minimum=0"`
	InitialY float64 `mapstructure:"initial_y" toml:"initial_y" json:"initial_y" jsonschema:"minimum=0"`
	// DragThreshold is the distance a press must travel before it becomes a drag.
	DragThreshold float64 `mapstructure:"drag_threshold" toml:"drag_threshold" json:"drag_threshold" jsonschema:"minimum=0"`
	// AnchorMargin is the gap kept between an anchored frame and the edge.
	AnchorMargin float64 `mapstructure:"anchor_margin" toml:"anchor_margin" json:"anchor_margin" jsonschema:"minimum=0"`
	TransitionMS int     `mapstructure:"transition_ms" toml:"transition_ms" json:"transition_ms" jsonschema:"minimum=0"`
	Layer        int     `mapstructure:"layer" toml:"layer" json:"layer"`
	Anchored     bool    `mapstructure:"anchored" toml:"anchored" json:"anchored"`
	// AnchoredDragStart is "immediate" (no threshold for anchored frames) or "threshold".
	AnchoredDragStart AnchoredDragStart `mapstructure:"anchored_drag_start" toml:"anchored_drag_start" json:"anchored_drag_start" jsonschema:"enum=immediate,enum=threshold"`
	// TouchDebounceMS is how long mouse input is ignored after a touch gesture.
	TouchDebounceMS int `mapstructure:"touch_debounce_ms" toml:"touch_debounce_ms" json:"touch_debounce_ms" jsonschema:"minimum=0"`
}

// AnchoredDragStart mirrors entity.AnchoredDragStart for configuration.
type AnchoredDragStart string

const (
	AnchoredDragStartImmediate AnchoredDragStart = "immediate"
	AnchoredDragStartThreshold AnchoredDragStart = "threshold"
)

// StorageBackend selects the key-value store implementation.
type StorageBackend string

const (
	StorageBackendSQLite StorageBackend = "sqlite"
	StorageBackendMemory StorageBackend = "memory"
)

// StorageConfig configures frame position persistence.
type StorageConfig struct {
	Backend StorageBackend `mapstructure:"backend" toml:"backend" json:"backend" jsonschema:"enum=sqlite,enum=memory"`
	// Path is the SQLite database file. Empty means $XDG_DATA_HOME/dragframe/dragframe.sqlite.
	Path      string `mapstructure:"path" toml:"path" json:"path"`
	KeyPrefix string `mapstructure:"key_prefix" toml:"key_prefix" json:"key_prefix"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// LogDir defaults to $XDG_STATE_HOME/dragframe/logs.
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
}

// DemoBackend selects the terminal library driving `dragframe run`.
type DemoBackend string

const (
	DemoBackendTea   DemoBackend = "tea"
	DemoBackendTcell DemoBackend = "tcell"
)

// DemoConfig describes the demo surface.
type DemoConfig struct {
	Backend DemoBackend       `mapstructure:"backend" toml:"backend" json:"backend" jsonschema:"enum=tea,enum=tcell"`
	Frames  []DemoFrameConfig `mapstructure:"frames" toml:"frames" json:"frames"`
}

// DemoFrameConfig is one frame of the demo. Anchored overrides frame.anchored when set.
type DemoFrameConfig struct {
	ID       string  `mapstructure:"id" toml:"id" json:"id"`
	Title    string  `mapstructure:"title" toml:"title" json:"title"`
	Body     string  `mapstructure:"body" toml:"body" json:"body"`
	Width    int     `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=1"`
	Height   int     `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1"`
	X        float64 `mapstructure:"x" toml:"x" json:"x"`
	Y        float64 `mapstructure:"y" toml:"y" json:"y"`
	Layer    int     `mapstructure:"layer" toml:"layer" json:"layer"`
	Anchored *bool   `mapstructure:"anchored" toml:"anchored,omitempty" json:"anchored,omitempty"`
}

// FrameOptions builds the options of one frame from the frame defaults.
func (c FrameConfig) FrameOptions(id entity.FrameID) entity.FrameOptions {
	return entity.FrameOptions{
		ID:                 id,
		InitialPosition:    &entity.Position{X: c.InitialX, Y: c.InitialY},
		DragThreshold:      entity.Ptr(c.DragThreshold),
		AnchorMargin:       entity.Ptr(c.AnchorMargin),
		TransitionDuration: entity.Ptr(time.Duration(c.TransitionMS) * time.Millisecond),
		Layer:              c.Layer,
		Anchored:           c.Anchored,
		AnchoredDragStart:  entity.AnchoredDragStart(c.AnchoredDragStart),
		TouchDebounce:      entity.Ptr(time.Duration(c.TouchDebounceMS) * time.Millisecond),
	}.WithDefaults()
}

// FrameOptions builds the options of a demo frame, falling back to the frame
// defaults for anything the demo entry leaves unset.
func (d DemoFrameConfig) FrameOptions(defaults FrameConfig) entity.FrameOptions {
	opts := defaults.FrameOptions(entity.FrameID(d.ID))
	if d.X != 0 || d.Y != 0 {
		opts.InitialPosition = &entity.Position{X: d.X, Y: d.Y}
	}
	if d.Layer != 0 {
		opts.Layer = d.Layer
	}
	if d.Anchored != nil {
		opts.Anchored = *d.Anchored
	}
	return opts
}

// Size returns the demo frame size in cells.
func (d DemoFrameConfig) Size() entity.Size {
	return entity.Size{Width: float64(d.Width), Height: float64(d.Height)}
}
