package calendar

import "sync"

// DetailViewer owns the single open event-detail surface. Opening a view
// while another is open releases the old one first, so the release hook of
// every acquired view runs exactly once. This replaces ad-hoc tracking of
// overlay handles.
//
// Intended for interactive consumers rendering the week grid (one detail
// overlay at a time); the HTTP surface is stateless and does not hold views.
type DetailViewer struct {
	mu      sync.Mutex
	current *DetailView
}

// DetailView is a scoped handle on one event's detail surface.
type DetailView struct {
	Event   Event
	viewer  *DetailViewer
	release func()
}

// Open acquires a detail view for event. release is run when the view is
// closed or superseded; it may be nil.
func (v *DetailViewer) Open(event Event, release func()) *DetailView {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current != nil {
		v.current.releaseLocked()
	}

	view := &DetailView{Event: event, viewer: v, release: release}
	v.current = view
	return view
}

// Current returns the open view, or nil.
func (v *DetailViewer) Current() *DetailView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Close releases the view. Closing a superseded or already-closed view is a
// no-op.
func (d *DetailView) Close() {
	d.viewer.mu.Lock()
	defer d.viewer.mu.Unlock()

	if d.viewer.current != d {
		return
	}
	d.releaseLocked()
	d.viewer.current = nil
}

func (d *DetailView) releaseLocked() {
	if d.release != nil {
		d.release()
		d.release = nil
	}
}
