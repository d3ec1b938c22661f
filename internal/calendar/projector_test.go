package calendar

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"meetly-service/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPages() []models.MeetingPage {
	return []models.MeetingPage{
		{ID: "page-1", Title: "Intro Call", DurationMinutes: 30},
		{ID: "page-2", Title: "Deep Dive", DurationMinutes: 90, MeetingLink: "https://example.com/deep-dive"},
	}
}

func booking(pageID, date, hhmm, zone string) models.Booking {
	return models.Booking{
		ID:            "booking-1",
		MeetingPageID: pageID,
		LocalDate:     date,
		LocalTime:     hhmm,
		Timezone:      zone,
		AttendeeName:  "Ada",
		AttendeeEmail: "ada@example.com",
		Status:        models.BookingBooked,
	}
}

func TestProject_ZonedStartAndDuration(t *testing.T) {
	p := NewProjector(discardLogger(), testPages())

	event, ok := p.Project(booking("page-1", "2024-06-05", "14:00", "America/New_York"))
	if !ok {
		t.Fatalf("expected booking to project")
	}

	// 14:00 EDT is 18:00 UTC.
	if !event.Start.Equal(time.Date(2024, 6, 5, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected start 18:00Z, got %s", event.Start.UTC())
	}
	if got := event.End.Sub(event.Start); got != 30*time.Minute {
		t.Fatalf("expected 30-minute event, got %s", got)
	}
	if event.Title != "Intro Call" {
		t.Fatalf("expected page title, got %q", event.Title)
	}
}

func TestProject_MissingPageDefaultsTo60Minutes(t *testing.T) {
	p := NewProjector(discardLogger(), testPages())

	event, ok := p.Project(booking("deleted-page", "2024-06-05", "10:00", "UTC"))
	if !ok {
		t.Fatalf("expected booking to project")
	}

	if got := event.End.Sub(event.Start); got != 60*time.Minute {
		t.Fatalf("expected 60-minute default, got %s", got)
	}
	if event.Title != "Meeting" {
		t.Fatalf("expected fallback title, got %q", event.Title)
	}
}

func TestProject_MissingDateOrTimeIsSilentlySkipped(t *testing.T) {
	p := NewProjector(discardLogger(), testPages())

	noDate := booking("page-1", "", "10:00", "UTC")
	if _, ok := p.Project(noDate); ok {
		t.Fatalf("expected booking without date to be skipped")
	}

	noTime := booking("page-1", "2024-06-05", "", "UTC")
	if _, ok := p.Project(noTime); ok {
		t.Fatalf("expected booking without time to be skipped")
	}
}

func TestProject_MalformedTimeIsSkipped(t *testing.T) {
	p := NewProjector(discardLogger(), testPages())

	if _, ok := p.Project(booking("page-1", "2024-06-05", "25:99", "UTC")); ok {
		t.Fatalf("expected malformed time to be skipped")
	}
}

func TestProject_UserInputFallbacks(t *testing.T) {
	p := NewProjector(discardLogger(), testPages())

	b := models.Booking{
		ID:            "booking-2",
		MeetingPageID: "page-2",
		UserInput: map[string]any{
			"selected_date": "2024-06-05",
			"selected_time": "09:00",
			"timezone":      "Asia/Kolkata",
			"name":          "Niels",
			"email":         "niels@example.com",
		},
		Status: models.BookingBooked,
	}

	event, ok := p.Project(b)
	if !ok {
		t.Fatalf("expected booking to project from user input")
	}

	// 09:00 IST is 03:30 UTC.
	if !event.Start.Equal(time.Date(2024, 6, 5, 3, 30, 0, 0, time.UTC)) {
		t.Fatalf("expected start 03:30Z, got %s", event.Start.UTC())
	}
	if event.AttendeeName != "Niels" || event.AttendeeEmail != "niels@example.com" {
		t.Fatalf("expected attendee from answers, got %q / %q", event.AttendeeName, event.AttendeeEmail)
	}
	if event.MeetingLink != "https://example.com/deep-dive" {
		t.Fatalf("expected page meeting link, got %q", event.MeetingLink)
	}
}

func TestProject_AnonymousBookingGetsGuestName(t *testing.T) {
	p := NewProjector(discardLogger(), testPages())

	b := booking("page-1", "2024-06-05", "10:00", "UTC")
	b.AttendeeName = ""

	event, ok := p.Project(b)
	if !ok {
		t.Fatalf("expected booking to project")
	}
	if event.AttendeeName != "Guest" {
		t.Fatalf("expected Guest fallback, got %q", event.AttendeeName)
	}
}

func TestProjectAll_DropsOnlyUnplaceable(t *testing.T) {
	p := NewProjector(discardLogger(), testPages())

	bookings := []models.Booking{
		booking("page-1", "2024-06-05", "10:00", "UTC"),
		booking("page-1", "", "", "UTC"),
		booking("page-2", "2024-06-06", "11:00", "Europe/London"),
	}

	events := p.ProjectAll(bookings)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}

func TestResolveInstant_UnknownZoneReadsAsUTC(t *testing.T) {
	instant, ok := ResolveInstant("2024-06-05", "10:00", "Not/A_Zone")
	if !ok {
		t.Fatalf("expected instant")
	}
	if !instant.Equal(time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 10:00Z, got %s", instant.UTC())
	}
}
