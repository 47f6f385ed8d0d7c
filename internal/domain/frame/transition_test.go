package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dragframe/internal/domain/entity"
)

func TestTransition_At(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTransition(entity.Position{X: 100, Y: 50}, entity.Position{X: 10, Y: 50}, start, 250*time.Millisecond)

	p, done := tr.At(start)
	assert.False(t, done)
	assert.Equal(t, entity.Position{X: 100, Y: 50}, p)

	mid, done := tr.At(start.Add(125 * time.Millisecond))
	assert.False(t, done)
	assert.Less(t, mid.X, 100.0)
	assert.Greater(t, mid.X, 10.0)
	// ease-out: more than half of the distance is covered at half time
	assert.Less(t, mid.X, 55.0)

	p, done = tr.At(start.Add(250 * time.Millisecond))
	assert.True(t, done)
	assert.Equal(t, entity.Position{X: 10, Y: 50}, p)
	assert.Equal(t, entity.Position{X: 10, Y: 50}, tr.Target())
}

func TestTransition_ZeroDurationIsInstant(t *testing.T) {
	tr := NewTransition(entity.Position{X: 1}, entity.Position{X: 2}, time.Now(), 0)
	p, done := tr.At(time.Now())
	assert.True(t, done)
	assert.Equal(t, entity.Position{X: 2}, p)
}

func TestSettled(t *testing.T) {
	p, done := Settled(entity.Position{X: 7, Y: 8}).At(time.Time{})
	assert.True(t, done)
	assert.Equal(t, entity.Position{X: 7, Y: 8}, p)
}

func TestEaseOutCubic_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.Equal(t, 1.0, EaseOutCubic(3))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-9)
}
