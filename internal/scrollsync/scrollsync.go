// Package scrollsync mirrors the vertical scroll offset between the original
// and simplified document panes so both read in lockstep.
package scrollsync

import (
	"time"
)

// Pane is the scroll state of one content pane.
type Pane struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}

// maxScroll is the largest valid ScrollTop.
func (p Pane) maxScroll() float64 {
	return p.ScrollHeight - p.ClientHeight
}

// Ratio returns the pane's scroll position as a fraction in [0,1]. Content
// that fits without scrolling reads as 0.
func Ratio(p Pane) float64 {
	max := p.maxScroll()
	if max <= 0 {
		return 0
	}
	return p.ScrollTop / max
}

// View is the workspace display mode. Syncing only happens in split view.
type View int

const (
	ViewSplit View = iota
	ViewFullscreenOriginal
	ViewFullscreenSimplified
)

const (
	// Window the mirrored event is suppressed for, preventing the target
	// pane's scroll handler from ping-ponging back.
	defaultGuardWindow = 100 * time.Millisecond
	// How long the sync indicator stays visible after a sync.
	defaultIndicatorWindow = time.Second
)

// Syncer applies proportional scroll mirroring with a re-entrancy guard and a
// transient indicator. Not safe for concurrent use; it models a single UI
// event loop.
type Syncer struct {
	view            View
	guardUntil      time.Time
	indicatorUntil  time.Time
	percentage      float64
	guardWindow     time.Duration
	indicatorWindow time.Duration
	now             func() time.Time
}

type Option func(*Syncer)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) { s.now = now }
}

func WithGuardWindow(d time.Duration) Option {
	return func(s *Syncer) { s.guardWindow = d }
}

func WithIndicatorWindow(d time.Duration) Option {
	return func(s *Syncer) { s.indicatorWindow = d }
}

func New(opts ...Option) *Syncer {
	s := &Syncer{
		guardWindow:     defaultGuardWindow,
		indicatorWindow: defaultIndicatorWindow,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetView switches display mode. Fullscreen suspends syncing entirely.
func (s *Syncer) SetView(v View) { s.view = v }

func (s *Syncer) View() View { return s.view }

// Sync mirrors src's position onto dst and reports whether it applied. It
// refuses to run while the guard from a previous sync is still open, so the
// mirrored scroll event cannot re-trigger a sync on the same tick.
func (s *Syncer) Sync(src Pane, dst *Pane) bool {
	now := s.now()
	if now.Before(s.guardUntil) || s.view != ViewSplit {
		return false
	}

	ratio := Ratio(src)
	s.percentage = ratio * 100
	if max := dst.maxScroll(); max > 0 {
		dst.ScrollTop = ratio * max
	} else {
		dst.ScrollTop = 0
	}

	s.guardUntil = now.Add(s.guardWindow)
	s.indicatorUntil = now.Add(s.indicatorWindow)
	return true
}

// Percentage is the last synced position in [0,100].
func (s *Syncer) Percentage() float64 { return s.percentage }

// IndicatorVisible reports whether the transient sync indicator should show.
func (s *Syncer) IndicatorVisible() bool {
	return s.view == ViewSplit && s.now().Before(s.indicatorUntil)
}
