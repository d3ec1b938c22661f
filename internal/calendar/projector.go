package calendar

import (
	"log/slog"
	"time"

	"meetly-service/internal/models"
)

const (
	fallbackTimezone        = "UTC"
	fallbackDurationMinutes = 60
	fallbackAttendeeName    = "Guest"
	fallbackTitle           = "Meeting"
	fallbackMeetingLink     = "https://meet.google.com/kro-egve-ssm"
)

// Event is a booking projected onto the calendar: absolute start and end
// instants plus display fields. Derived, never stored.
type Event struct {
	ID            string
	Title         string
	AttendeeName  string
	AttendeeEmail string
	Start         time.Time
	End           time.Time
	MeetingPageID string
	Notes         string
	MeetingLink   string
}

// Projector turns bookings into events using a read-only meeting-page lookup
// table. The table is rebuilt per data refresh; nothing is cached between
// projector instances.
type Projector struct {
	log   *slog.Logger
	pages map[string]models.MeetingPage
}

func NewProjector(log *slog.Logger, pages []models.MeetingPage) *Projector {
	lookup := make(map[string]models.MeetingPage, len(pages))
	for _, page := range pages {
		lookup[page.ID] = page
	}
	return &Projector{log: log, pages: lookup}
}

// Project maps one booking into an event. A booking without a resolvable
// local date and time cannot be placed on a grid and is skipped silently
// (ok=false): historical or malformed records must not break the view.
// A deleted meeting page degrades to a 60-minute untitled meeting.
func (p *Projector) Project(booking models.Booking) (Event, bool) {
	const op = "calendar.Projector.Project"

	localDate := booking.LocalDate
	localTime := booking.LocalTime
	zone := booking.Timezone
	if localDate == "" {
		localDate = stringField(booking.UserInput, "selected_date")
	}
	if localTime == "" {
		localTime = stringField(booking.UserInput, "selected_time")
	}
	if zone == "" {
		zone = stringField(booking.UserInput, "timezone")
	}
	if zone == "" {
		zone = fallbackTimezone
	}

	if localDate == "" || localTime == "" {
		p.log.Debug("Skipping booking without local date/time",
			slog.String("op", op), slog.String("booking_id", booking.ID))
		return Event{}, false
	}

	start, ok := ResolveInstant(localDate, localTime, zone)
	if !ok {
		p.log.Debug("Skipping booking with unresolvable start",
			slog.String("op", op), slog.String("booking_id", booking.ID),
			slog.String("date", localDate), slog.String("time", localTime))
		return Event{}, false
	}

	duration := fallbackDurationMinutes
	title := fallbackTitle
	pageLink := ""
	if page, found := p.pages[booking.MeetingPageID]; found {
		if page.DurationMinutes > 0 {
			duration = page.DurationMinutes
		}
		if page.Title != "" {
			title = page.Title
		}
		pageLink = page.MeetingLink
	}

	attendeeName := booking.AttendeeName
	if attendeeName == "" {
		attendeeName = firstStringField(booking.UserInput, "name", "attendee_name")
	}
	if attendeeName == "" {
		attendeeName = fallbackAttendeeName
	}

	attendeeEmail := booking.AttendeeEmail
	if attendeeEmail == "" {
		attendeeEmail = firstStringField(booking.UserInput, "email", "attendee_email")
	}

	meetingLink := stringField(booking.UserInput, "meeting_link")
	if meetingLink == "" {
		meetingLink = pageLink
	}
	if meetingLink == "" {
		meetingLink = fallbackMeetingLink
	}

	return Event{
		ID:            booking.ID,
		Title:         title,
		AttendeeName:  attendeeName,
		AttendeeEmail: attendeeEmail,
		Start:         start,
		End:           start.Add(time.Duration(duration) * time.Minute),
		MeetingPageID: booking.MeetingPageID,
		Notes:         booking.Notes,
		MeetingLink:   meetingLink,
	}, true
}

// ProjectAll projects every placeable booking, dropping the rest.
func (p *Projector) ProjectAll(bookings []models.Booking) []Event {
	events := make([]Event, 0, len(bookings))
	for _, booking := range bookings {
		if event, ok := p.Project(booking); ok {
			events = append(events, event)
		}
	}
	return events
}

// ResolveInstant interprets a wall-clock date ("2006-01-02") and time
// ("15:04") in the named IANA zone and normalizes to an absolute instant.
// The offset comes from the zone database, not from string round-tripping,
// so it is exact across DST transitions. An unknown zone is read as UTC.
func ResolveInstant(dateISO, hhmm, zone string) (time.Time, bool) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}

	instant, err := time.ParseInLocation("2006-01-02 15:04", dateISO+" "+hhmm, loc)
	if err != nil {
		return time.Time{}, false
	}
	return instant, true
}

func stringField(input map[string]any, key string) string {
	if input == nil {
		return ""
	}
	if value, ok := input[key].(string); ok {
		return value
	}
	return ""
}

func firstStringField(input map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := stringField(input, key); value != "" {
			return value
		}
	}
	return ""
}
