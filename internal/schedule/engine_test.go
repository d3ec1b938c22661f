package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type stubPages struct {
	duration int
	err      error
}

func (s stubPages) PageDuration(ctx context.Context, meetingPageID string) (int, error) {
	return s.duration, s.err
}

type stubDays struct {
	entries []BusyEntry
	err     error
}

func (s stubDays) DaySlots(ctx context.Context, meetingPageID, dateISO string) ([]BusyEntry, error) {
	return s.entries, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngineSlots_FallbackWhenDayEmpty(t *testing.T) {
	engine := NewEngine(discardLogger(), stubPages{duration: 30}, stubDays{})

	slots := engine.Slots(context.Background(), "page-1", "2024-06-05", "UTC")

	if len(slots) != 16 {
		t.Fatalf("expected 16 fallback slots, got %d", len(slots))
	}
}

func TestEngineSlots_FallbackWhenUpstreamFails(t *testing.T) {
	engine := NewEngine(discardLogger(), stubPages{duration: 60}, stubDays{err: errors.New("connection refused")})

	slots := engine.Slots(context.Background(), "page-1", "2024-06-05", "UTC")

	if len(slots) != 8 {
		t.Fatalf("expected 8 fallback slots, got %d", len(slots))
	}
}

func TestEngineSlots_DefaultDurationOnPageLookupFailure(t *testing.T) {
	engine := NewEngine(discardLogger(), stubPages{err: errors.New("not found")}, stubDays{})

	slots := engine.Slots(context.Background(), "gone", "2024-06-05", "UTC")

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots at 30-minute default, got %d", len(slots))
	}
}

func TestEngineSlots_ExcludesBookedTime(t *testing.T) {
	days := stubDays{entries: []BusyEntry{{Time: "2024-06-05T14:00:00Z", Status: "booked"}}}
	engine := NewEngine(discardLogger(), stubPages{duration: 30}, days)

	slots := engine.Slots(context.Background(), "page-1", "2024-06-05", "UTC")

	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		seen[s.Time] = true
	}
	if seen["14:00"] {
		t.Fatalf("expected 14:00 excluded, got %v", slots)
	}
	if !seen["13:30"] || !seen["14:30"] {
		t.Fatalf("expected neighbours 13:30 and 14:30 present, got %v", slots)
	}
}

// A day whose raw entries filter down to nothing is fully booked, not missing
// data: no fallback.
func TestEngineSlots_FilteredToZeroStaysEmpty(t *testing.T) {
	entries := make([]BusyEntry, 0, 16)
	for _, slot := range Generate(30) {
		entries = append(entries, BusyEntry{Time: "2024-06-05T" + slot.Time + ":00Z", Status: "booked"})
	}
	engine := NewEngine(discardLogger(), stubPages{duration: 30}, stubDays{entries: entries})

	slots := engine.Slots(context.Background(), "page-1", "2024-06-05", "UTC")

	if len(slots) != 0 {
		t.Fatalf("expected fully booked day to stay empty, got %v", slots)
	}
}
