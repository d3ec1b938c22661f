package calendar

import (
	"testing"
	"time"
)

func TestStartOfWeek_SundayGoesBackSixDays(t *testing.T) {
	// 2024-06-09 is a Sunday.
	sunday := time.Date(2024, 6, 9, 15, 30, 0, 0, time.UTC)

	start := StartOfWeek(sunday)

	want := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %s, got %s", want, start)
	}
}

func TestStartOfWeek_MondayIsItself(t *testing.T) {
	monday := time.Date(2024, 6, 3, 23, 59, 0, 0, time.UTC)

	start := StartOfWeek(monday)

	want := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %s, got %s", want, start)
	}
}

func TestStartOfWeek_MidWeek(t *testing.T) {
	// 2024-06-06 is a Thursday.
	thursday := time.Date(2024, 6, 6, 9, 0, 0, 0, time.UTC)

	start := StartOfWeek(thursday)

	want := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %s, got %s", want, start)
	}
}

func TestWindow_ShiftRoundTrip(t *testing.T) {
	w := At(time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC))

	back := w.Shift(1).Shift(-1)

	if !back.Start.Equal(w.Start) {
		t.Fatalf("shift(1) then shift(-1) moved start from %s to %s", w.Start, back.Start)
	}
}

func TestWindow_SevenDaysMondayFirst(t *testing.T) {
	w := At(time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC))

	days := w.Days()

	if days[0].Weekday() != time.Monday {
		t.Fatalf("expected Monday first, got %s", days[0].Weekday())
	}
	for i := 1; i < 7; i++ {
		if got := days[i].Sub(days[i-1]); got != 24*time.Hour {
			t.Fatalf("day %d: expected consecutive days, gap %s", i, got)
		}
	}
	if days[6].Weekday() != time.Sunday {
		t.Fatalf("expected Sunday last, got %s", days[6].Weekday())
	}
}

func TestWindow_Contains(t *testing.T) {
	w := At(time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC))

	if !w.Contains(w.Start) {
		t.Fatalf("expected window to contain its own start")
	}
	if !w.Contains(time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("expected window to contain Sunday evening")
	}
	if w.Contains(w.End()) {
		t.Fatalf("expected exclusive end boundary")
	}
	if w.Contains(w.Start.Add(-time.Minute)) {
		t.Fatalf("expected minute before start excluded")
	}
}

func TestWindow_RangeLabel(t *testing.T) {
	w := At(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))

	if got := w.RangeLabel(); got != "Jun 3 - Jun 9, 2024" {
		t.Fatalf("expected 'Jun 3 - Jun 9, 2024', got %q", got)
	}
}
