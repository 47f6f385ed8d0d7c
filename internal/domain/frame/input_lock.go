package frame

import "time"

// InputSource tells mouse and touch sessions apart.
type InputSource uint8

const (
	SourceNone InputSource = iota
	SourceMouse
	SourceTouch
)

// String returns human-readable source name
func (s InputSource) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	default:
		return "none"
	}
}

// InputLock keeps one input source in charge of a frame. Devices that emit a
// compatibility mouse sequence after a touch gesture would otherwise start a
// second, phantom session; the lock refuses other sources while a session is
// live and, for touch, for a short window after it ended.
type InputLock struct {
	window time.Duration
	holder InputSource
	active bool
	expiry time.Time
}

// NewInputLock creates a lock with the given post-touch window.
func NewInputLock(window time.Duration) *InputLock {
	return &InputLock{window: window}
}

// SetWindow changes the post-touch window for later sessions.
func (l *InputLock) SetWindow(window time.Duration) {
	l.window = window
}

// Allows reports whether src may start or continue a session at now.
func (l *InputLock) Allows(src InputSource, now time.Time) bool {
	if l.holder == SourceNone || l.holder == src {
		return true
	}
	if l.active {
		return false
	}
	return !now.Before(l.expiry)
}

// Begin records that src started a session. Callers check Allows first.
func (l *InputLock) Begin(src InputSource) {
	l.holder = src
	l.active = true
	l.expiry = time.Time{}
}

// End records that the session of src ended at now.
func (l *InputLock) End(src InputSource, now time.Time) {
	if l.holder != src {
		return
	}
	l.active = false
	if src == SourceTouch && l.window > 0 {
		l.expiry = now.Add(l.window)
		return
	}
	l.holder = SourceNone
}

// Reset drops any hold immediately.
func (l *InputLock) Reset() {
	l.holder = SourceNone
	l.active = false
	l.expiry = time.Time{}
}
