package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// PositionSchemaVersion is written into every persisted position record.
// Records without a version predate it: a percentage flag marks the fractional
// encoding, anything else is an absolute pixel record.
const PositionSchemaVersion = 2

// ErrMalformedPosition marks a persisted record that cannot be used.
var ErrMalformedPosition = errors.New("malformed persisted position")

// PersistedPosition is the stored form of a frame position. X and Y are
// fractions of the viewport size when Percentage is set.
type PersistedPosition struct {
	Version    int        `json:"version,omitempty"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Percentage bool       `json:"percentage"`
	Side       AnchorSide `json:"side,omitempty"`
}

// rawPersistedPosition keeps presence information for required keys.
type rawPersistedPosition struct {
	Version    int        `json:"version"`
	X          *float64   `json:"x"`
	Y          *float64   `json:"y"`
	Percentage *bool      `json:"percentage"`
	Side       AnchorSide `json:"side"`
}

// StoredEntry is a raw key/value pair as held by a key-value store.
type StoredEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// EncodePosition converts an absolute position into the fractional record for
// the given viewport. The viewport must have a non-zero area.
func EncodePosition(p Position, viewport Size, side AnchorSide) PersistedPosition {
	rec := PersistedPosition{
		Version:    PositionSchemaVersion,
		X:          unitClamp(p.X / viewport.Width),
		Y:          unitClamp(p.Y / viewport.Height),
		Percentage: true,
	}
	if side.Valid() {
		rec.Side = side
	}
	return rec
}

// Marshal returns the JSON form of the record.
func (r PersistedPosition) Marshal() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Resolve converts the record to absolute pixels for the given viewport.
func (r PersistedPosition) Resolve(viewport Size) Position {
	if !r.Percentage {
		return Position{X: r.X, Y: r.Y}
	}
	return Position{X: r.X * viewport.Width, Y: r.Y * viewport.Height}
}

// ParsePersistedPosition decodes and validates a stored record, migrating
// unversioned records to the current shape. Every failure wraps ErrMalformedPosition.
func ParsePersistedPosition(raw string) (PersistedPosition, error) {
	var in rawPersistedPosition
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return PersistedPosition{}, fmt.Errorf("%w: %v", ErrMalformedPosition, err)
	}
	if in.X == nil || in.Y == nil {
		return PersistedPosition{}, fmt.Errorf("%w: missing coordinate", ErrMalformedPosition)
	}
	if !finite(*in.X) || !finite(*in.Y) {
		return PersistedPosition{}, fmt.Errorf("%w: non-finite coordinate", ErrMalformedPosition)
	}
	if in.Side != AnchorNone && !in.Side.Valid() {
		return PersistedPosition{}, fmt.Errorf("%w: unknown side %q", ErrMalformedPosition, in.Side)
	}

	percentage := in.Percentage != nil && *in.Percentage
	rec := PersistedPosition{
		Version:    PositionSchemaVersion,
		X:          *in.X,
		Y:          *in.Y,
		Percentage: percentage,
		Side:       in.Side,
	}

	switch in.Version {
	case 0:
		// legacy: absolute pixels unless flagged as percentage
	case PositionSchemaVersion:
		if !percentage {
			return PersistedPosition{}, fmt.Errorf("%w: version %d requires percentage encoding", ErrMalformedPosition, in.Version)
		}
	default:
		return PersistedPosition{}, fmt.Errorf("%w: unknown version %d", ErrMalformedPosition, in.Version)
	}

	if percentage && (rec.X < 0 || rec.X > 1 || rec.Y < 0 || rec.Y > 1) {
		return PersistedPosition{}, fmt.Errorf("%w: fraction out of range", ErrMalformedPosition)
	}
	return rec, nil
}

// DecodePersistedPosition parses raw and resolves it against the viewport.
func DecodePersistedPosition(raw string, viewport Size) (Position, AnchorSide, error) {
	rec, err := ParsePersistedPosition(raw)
	if err != nil {
		return Position{}, AnchorNone, err
	}
	return rec.Resolve(viewport), rec.Side, nil
}

func unitClamp(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
