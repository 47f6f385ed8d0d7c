package frame

import (
	"sync"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// Registry is the mutual-exclusion token shared by every frame hosted on the
// same surface. At most one frame owns it, from the moment its press becomes
// a real drag until that drag ends. Frames that do not own it ignore pointer
// moves and releases while it is held.
type Registry struct {
	mu    sync.RWMutex
	owner entity.FrameID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// TryAcquire claims the registry for id. It succeeds when the registry is free
// or already owned by id.
func (r *Registry) TryAcquire(id entity.FrameID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner != "" && r.owner != id {
		return false
	}
	r.owner = id
	return true
}

// Release frees the registry if id owns it and reports whether it did.
func (r *Registry) Release(id entity.FrameID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner == "" || r.owner != id {
		return false
	}
	r.owner = ""
	return true
}

// Owner returns the current owner, if any.
func (r *Registry) Owner() (entity.FrameID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner, r.owner != ""
}

// OwnedByOther reports whether a frame other than id holds the registry.
func (r *Registry) OwnedByOther(id entity.FrameID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner != "" && r.owner != id
}
