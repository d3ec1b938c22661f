package schedule

import (
	"context"
	"log/slog"

	"meetly-service/pkg/sl"
)

// PageDurations resolves a meeting page's slot duration in minutes.
type PageDurations interface {
	PageDuration(ctx context.Context, meetingPageID string) (int, error)
}

// DaySource returns the raw booking entries recorded for a page on a date
// (ISO "2006-01-02"). An empty result means nothing is recorded for the day.
type DaySource interface {
	DaySlots(ctx context.Context, meetingPageID, dateISO string) ([]BusyEntry, error)
}

// Engine computes the offerable slots for a (meeting page, date, timezone)
// request. It is a pure function of its inputs plus the upstream snapshot and
// never propagates an upstream failure: the guest-facing booking page must
// always be shown something bookable.
type Engine struct {
	log   *slog.Logger
	pages PageDurations
	days  DaySource
}

func NewEngine(log *slog.Logger, pages PageDurations, days DaySource) *Engine {
	return &Engine{log: log, pages: pages, days: days}
}

// Slots returns the offerable slot list, in the requested zone's wall clock.
//
// Fallback policy: when the upstream day source fails, or records zero raw
// entries for the date, the deterministic business-hours generator answers
// instead. A day whose raw entries filter down to nothing stays empty: that
// is a fully booked day, not missing data.
func (e *Engine) Slots(ctx context.Context, meetingPageID, dateISO, timezone string) []TimeSlot {
	const op = "schedule.Engine.Slots"

	duration := defaultStepMinutes
	if d, err := e.pages.PageDuration(ctx, meetingPageID); err != nil {
		e.log.Debug("Falling back to default duration",
			slog.String("op", op), slog.String("meeting_page_id", meetingPageID), sl.Err(err))
	} else if d > 0 {
		duration = d
	}

	candidates := Generate(duration)

	raw, err := e.days.DaySlots(ctx, meetingPageID, dateISO)
	if err != nil {
		e.log.Error("Day slot source failed, serving fallback slots",
			slog.String("op", op), slog.String("date", dateISO), sl.Err(err))
		return candidates
	}

	if len(raw) == 0 {
		return candidates
	}

	return FilterBusy(candidates, raw, timezone)
}
