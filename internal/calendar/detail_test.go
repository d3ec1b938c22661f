package calendar

import "testing"

func TestDetailViewer_OpeningSecondReleasesFirst(t *testing.T) {
	var viewer DetailViewer

	released := 0
	first := viewer.Open(Event{ID: "a"}, func() { released++ })
	second := viewer.Open(Event{ID: "b"}, nil)

	if released != 1 {
		t.Fatalf("expected first view released once, got %d", released)
	}
	if viewer.Current() != second {
		t.Fatalf("expected second view current")
	}

	// Closing the superseded handle must not disturb the new view.
	first.Close()
	if viewer.Current() != second {
		t.Fatalf("expected second view still current after stale close")
	}
}

func TestDetailView_CloseRunsReleaseOnce(t *testing.T) {
	var viewer DetailViewer

	released := 0
	view := viewer.Open(Event{ID: "a"}, func() { released++ })

	view.Close()
	view.Close()

	if released != 1 {
		t.Fatalf("expected release to run once, got %d", released)
	}
	if viewer.Current() != nil {
		t.Fatalf("expected no current view after close")
	}
}

func TestDetailViewer_ReopenAfterClose(t *testing.T) {
	var viewer DetailViewer

	viewer.Open(Event{ID: "a"}, nil).Close()

	view := viewer.Open(Event{ID: "b"}, nil)
	if viewer.Current() != view {
		t.Fatalf("expected reopened view current")
	}
	if view.Event.ID != "b" {
		t.Fatalf("expected event b, got %s", view.Event.ID)
	}
}
