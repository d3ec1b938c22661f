package calendar

import (
	"testing"
	"time"
)

func utcEvent(id string, start time.Time, minutes int) Event {
	return Event{
		ID:    id,
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestLayout_TopAndHeight(t *testing.T) {
	w := At(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	g := Grid{PixelsPerMinute: 0.8, MinEventHeight: 32}

	// 01:30 Monday, 30 minutes: 90 minutes past day start.
	event := utcEvent("e1", time.Date(2024, 6, 3, 1, 30, 0, 0, time.UTC), 30)

	placed := g.Layout(w, []Event{event})

	if len(placed[0]) != 1 {
		t.Fatalf("expected event in Monday column, got %d", len(placed[0]))
	}
	geo := placed[0][0].Geometry
	if geo.Top != 90*0.8 {
		t.Fatalf("expected top %.1f, got %.1f", 90*0.8, geo.Top)
	}
	// 30 * 0.8 = 24 is below the 32px floor.
	if geo.Height != 32 {
		t.Fatalf("expected floor height 32, got %.1f", geo.Height)
	}
}

func TestLayout_LongEventUsesRealHeight(t *testing.T) {
	w := At(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	g := Grid{PixelsPerMinute: 0.8, MinEventHeight: 32}

	event := utcEvent("e1", time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC), 90)

	placed := g.Layout(w, []Event{event})

	geo := placed[1][0].Geometry
	if geo.Day != 1 {
		t.Fatalf("expected Tuesday column 1, got %d", geo.Day)
	}
	if geo.Top != 540*0.8 {
		t.Fatalf("expected top %.1f, got %.1f", 540*0.8, geo.Top)
	}
	if geo.Height != 90*0.8 {
		t.Fatalf("expected height %.1f, got %.1f", 90*0.8, geo.Height)
	}
}

func TestLayout_BucketingExhaustiveAndDisjoint(t *testing.T) {
	w := At(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	g := Grid{}

	var events []Event
	for i := 0; i < 7; i++ {
		day := w.Start.AddDate(0, 0, i)
		events = append(events,
			utcEvent("a", day.Add(9*time.Hour), 30),
			utcEvent("b", day.Add(9*time.Hour), 30), // concurrent, still placed
		)
	}

	placed := g.Layout(w, events)

	total := 0
	for i := range placed {
		total += len(placed[i])
		if len(placed[i]) != 2 {
			t.Fatalf("day %d: expected 2 events, got %d", i, len(placed[i]))
		}
	}
	if total != len(events) {
		t.Fatalf("expected %d placed events, got %d", len(events), total)
	}
}

func TestLayout_OutOfWindowEventsDropped(t *testing.T) {
	w := At(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	g := Grid{}

	events := []Event{
		utcEvent("before", time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC), 30),
		utcEvent("after", time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), 30),
	}

	placed := g.Layout(w, events)

	for i := range placed {
		if len(placed[i]) != 0 {
			t.Fatalf("day %d: expected empty, got %d events", i, len(placed[i]))
		}
	}
}

func TestLayout_ZeroValueGridUsesDefaults(t *testing.T) {
	w := At(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	var g Grid

	event := utcEvent("e1", time.Date(2024, 6, 3, 2, 0, 0, 0, time.UTC), 10)

	placed := g.Layout(w, []Event{event})

	geo := placed[0][0].Geometry
	if geo.Top != 120*DefaultPixelsPerMinute {
		t.Fatalf("expected default ppm top %.1f, got %.1f", 120*DefaultPixelsPerMinute, geo.Top)
	}
	if geo.Height != DefaultMinEventHeight {
		t.Fatalf("expected default floor height, got %.1f", geo.Height)
	}
}
