package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/domain/repository"
	"github.com/bnema/dragframe/internal/logging"
)

// DefaultKeyPrefix namespaces frame records in the key-value store.
const DefaultKeyPrefix = "dragframe"

// ErrViewportUnmeasured is returned when a position cannot be encoded because
// the viewport has no area yet.
var ErrViewportUnmeasured = errors.New("viewport has no size")

// FramePositionInfo is a decoded persisted record, for listing.
type FramePositionInfo struct {
	ID        entity.FrameID
	Key       string
	Record    entity.PersistedPosition
	Raw       string
	Err       error
	UpdatedAt time.Time
}

// Valid reports whether the record decoded cleanly.
func (i FramePositionInfo) Valid() bool {
	return i.Err == nil
}

// FramePositionsUseCase converts frame positions to and from their persisted,
// viewport-relative form and keeps candidates inside the viewport.
type FramePositionsUseCase struct {
	store    repository.KeyValueStore
	viewport port.Viewport
	prefix   string
}

// NewFramePositionsUseCase creates the position store. An empty prefix uses DefaultKeyPrefix.
func NewFramePositionsUseCase(store repository.KeyValueStore, viewport port.Viewport, prefix string) *FramePositionsUseCase {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &FramePositionsUseCase{
		store:    store,
		viewport: viewport,
		prefix:   prefix,
	}
}

// StorageKey returns the key a frame's record lives under.
func (uc *FramePositionsUseCase) StorageKey(id entity.FrameID) string {
	return uc.prefix + ":" + string(id)
}

// Viewport returns the current viewport size.
func (uc *FramePositionsUseCase) Viewport() entity.Size {
	if uc.viewport == nil {
		return entity.Size{}
	}
	return uc.viewport.ViewportSize()
}

// Load returns the persisted position of id, or def when there is none.
func (uc *FramePositionsUseCase) Load(ctx context.Context, id entity.FrameID, def entity.Position) entity.Position {
	pos, _ := uc.LoadState(ctx, id, def)
	return pos
}

// LoadState is Load plus the persisted anchor side. Missing records, store
// failures and malformed records all fall back to def; nothing is returned as
// an error.
func (uc *FramePositionsUseCase) LoadState(ctx context.Context, id entity.FrameID, def entity.Position) (entity.Position, entity.AnchorSide) {
	log := logging.FromContext(ctx)
	key := uc.StorageKey(id)

	if uc.store == nil {
		return def, entity.AnchorNone
	}

	raw, found, err := uc.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read frame position, using default")
		return def, entity.AnchorNone
	}
	if !found {
		log.Debug().Str("key", key).Msg("no persisted frame position")
		return def, entity.AnchorNone
	}

	pos, side, err := entity.DecodePersistedPosition(raw, uc.Viewport())
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("discarding malformed frame position")
		return def, entity.AnchorNone
	}

	log.Debug().
		Str("key", key).
		Float64("x", pos.X).
		Float64("y", pos.Y).
		Str("side", string(side)).
		Msg("restored frame position")
	return pos, side
}

// Clamp keeps a frame of the given size inside the current viewport.
func (uc *FramePositionsUseCase) Clamp(candidate entity.Position, frame entity.Size) entity.Position {
	return entity.ClampPosition(candidate, frame, uc.Viewport())
}

// Persist stores pos as fractions of the current viewport. Callers persist
// settled positions only, never intermediate drag positions.
func (uc *FramePositionsUseCase) Persist(ctx context.Context, id entity.FrameID, pos entity.Position, side entity.AnchorSide) error {
	if uc.store == nil {
		return nil
	}

	viewport := uc.Viewport()
	if viewport.Empty() {
		return ErrViewportUnmeasured
	}

	raw, err := entity.EncodePosition(pos, viewport, side).Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode frame position: %w", err)
	}

	key := uc.StorageKey(id)
	if err := uc.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to persist frame position %s: %w", key, err)
	}

	logging.FromContext(ctx).Debug().
		Str("key", key).
		Float64("x", pos.X).
		Float64("y", pos.Y).
		Str("side", string(side)).
		Msg("frame position persisted")
	return nil
}

// Forget removes the persisted record of id.
func (uc *FramePositionsUseCase) Forget(ctx context.Context, id entity.FrameID) error {
	if uc.store == nil {
		return nil
	}
	if err := uc.store.Delete(ctx, uc.StorageKey(id)); err != nil {
		return fmt.Errorf("failed to forget frame position %s: %w", id, err)
	}
	logging.FromContext(ctx).Info().Str("frame_id", string(id)).Msg("frame position reset")
	return nil
}

// List returns every record under the prefix, decoded where possible.
// Malformed records are reported with Err set rather than skipped.
func (uc *FramePositionsUseCase) List(ctx context.Context) ([]FramePositionInfo, error) {
	if uc.store == nil {
		return nil, nil
	}

	entries, err := uc.store.List(ctx, uc.prefix+":")
	if err != nil {
		return nil, fmt.Errorf("failed to list frame positions: %w", err)
	}

	infos := make([]FramePositionInfo, 0, len(entries))
	for _, e := range entries {
		info := FramePositionInfo{
			ID:        entity.FrameID(strings.TrimPrefix(e.Key, uc.prefix+":")),
			Key:       e.Key,
			Raw:       e.Value,
			UpdatedAt: e.UpdatedAt,
		}
		info.Record, info.Err = entity.ParsePersistedPosition(e.Value)
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}
