package service

import (
	"errors"
	"testing"
	"time"

	"meetly-service/internal/models"
	"meetly-service/pkg/response"
)

func TestNormalizeFieldsInjectsReservedFields(t *testing.T) {
	fields, err := normalizeFields(nil)
	if err != nil {
		t.Fatalf("normalizeFields(nil) returned error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 injected fields, got %d", len(fields))
	}
	if fields[0].Name != models.ReservedFieldName || fields[1].Name != models.ReservedFieldEmail {
		t.Fatalf("reserved fields not first: %q, %q", fields[0].Name, fields[1].Name)
	}
	for i, field := range fields {
		if !field.Required {
			t.Errorf("field %q must be required", field.Name)
		}
		if field.Order != i {
			t.Errorf("field %q order = %d, want %d", field.Name, field.Order, i)
		}
		if field.ID == "" {
			t.Errorf("field %q got no generated id", field.Name)
		}
	}
	if fields[0].Type != models.FieldText {
		t.Errorf("name field type = %q, want %q", fields[0].Type, models.FieldText)
	}
	if fields[1].Type != models.FieldEmail {
		t.Errorf("email field type = %q, want %q", fields[1].Type, models.FieldEmail)
	}
}

func TestNormalizeFieldsForcesReservedSettings(t *testing.T) {
	fields, err := normalizeFields([]models.FieldConfig{
		{Name: "company", Type: models.FieldText, Order: 2},
		{Name: models.ReservedFieldEmail, Type: models.FieldText, Required: false, Order: 1},
		{Name: models.ReservedFieldName, Type: models.FieldTextarea, Required: false, Order: 0},
	})
	if err != nil {
		t.Fatalf("normalizeFields returned error: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	name := fields[0]
	if name.Name != models.ReservedFieldName || !name.Required || name.Type != models.FieldText {
		t.Errorf("name field not normalized: %+v", name)
	}
	email := fields[1]
	if email.Name != models.ReservedFieldEmail || !email.Required || email.Type != models.FieldEmail {
		t.Errorf("email field not normalized: %+v", email)
	}
	if fields[2].Name != "company" {
		t.Errorf("custom field misplaced: %q", fields[2].Name)
	}
	for i, field := range fields {
		if field.Order != i {
			t.Errorf("field %q order = %d, want %d", field.Name, field.Order, i)
		}
	}
}

func TestNormalizeFieldsRejectsDuplicates(t *testing.T) {
	_, err := normalizeFields([]models.FieldConfig{
		{Name: "company", Type: models.FieldText},
		{Name: "company", Type: models.FieldText},
	})
	if !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected validation error for duplicate names, got %v", err)
	}

	_, err = normalizeFields([]models.FieldConfig{{Name: "   ", Type: models.FieldText}})
	if !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestSplitBookingDate(t *testing.T) {
	cases := []struct {
		in       string
		date     string
		hhmm     string
		wantFail bool
	}{
		{in: "2024-06-03T10:30:00", date: "2024-06-03", hhmm: "10:30"},
		{in: "2024-06-03T10:30", date: "2024-06-03", hhmm: "10:30"},
		{in: "2024-06-03", wantFail: true},
		{in: "not-a-date", wantFail: true},
		{in: "", wantFail: true},
	}

	for _, tc := range cases {
		date, hhmm, err := splitBookingDate(tc.in)
		if tc.wantFail {
			if err == nil {
				t.Errorf("splitBookingDate(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("splitBookingDate(%q) returned error: %v", tc.in, err)
			continue
		}
		if date != tc.date || hhmm != tc.hhmm {
			t.Errorf("splitBookingDate(%q) = (%q, %q), want (%q, %q)", tc.in, date, hhmm, tc.date, tc.hhmm)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Intro Call":           "intro-call",
		"  30 Min Chat  ":      "30-min-chat",
		"Design Review (v2)!":  "design-review-v2",
		"Uppercase TITLE Here": "uppercase-title-here",
	}

	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateAvailability(t *testing.T) {
	valid := &models.AvailabilityRule{Weekday: 0, StartTime: "09:00", EndTime: "17:00"}
	if err := validateAvailability(valid); err != nil {
		t.Fatalf("valid rule rejected: %v", err)
	}

	invalid := []*models.AvailabilityRule{
		{Weekday: 7, StartTime: "09:00", EndTime: "17:00"},
		{Weekday: -1, StartTime: "09:00", EndTime: "17:00"},
		{Weekday: 1, StartTime: "9am", EndTime: "17:00"},
		{Weekday: 1, StartTime: "09:00", EndTime: "oops"},
		{Weekday: 1, StartTime: "17:00", EndTime: "09:00"},
		{Weekday: 1, StartTime: "09:00", EndTime: "09:00"},
	}
	for _, rule := range invalid {
		if err := validateAvailability(rule); !errors.Is(err, response.ErrValidation) {
			t.Errorf("rule %+v expected validation error, got %v", rule, err)
		}
	}
}

func TestCheckRequiredAnswers(t *testing.T) {
	fields := []models.FieldConfig{
		{Name: "name", Required: true},
		{Name: "email", Required: true},
		{Name: "company", Required: false},
	}

	err := checkRequiredAnswers(fields, map[string]any{"name": "Ada", "email": "ada@example.com"})
	if err != nil {
		t.Fatalf("complete answers rejected: %v", err)
	}

	err = checkRequiredAnswers(fields, map[string]any{"name": "Ada", "email": "   "})
	if !errors.Is(err, response.ErrValidation) {
		t.Fatalf("blank required answer expected validation error, got %v", err)
	}

	err = checkRequiredAnswers(fields, nil)
	if !errors.Is(err, response.ErrValidation) {
		t.Fatalf("missing answers expected validation error, got %v", err)
	}
}

func TestCheckRequiredAnswersNonStringScalars(t *testing.T) {
	fields := []models.FieldConfig{
		{Name: "attend_count", Type: models.FieldText, Required: true},
		{Name: "accept_terms", Type: models.FieldCheckbox, Required: true},
	}

	// JSON decoding hands numbers over as float64 and checkboxes as bool;
	// both are answers, not absences.
	err := checkRequiredAnswers(fields, map[string]any{
		"attend_count": float64(3),
		"accept_terms": false,
	})
	if err != nil {
		t.Fatalf("scalar answers rejected: %v", err)
	}

	err = checkRequiredAnswers(fields, map[string]any{
		"attend_count": float64(3),
		"accept_terms": nil,
	})
	if !errors.Is(err, response.ErrValidation) {
		t.Fatalf("nil answer expected validation error, got %v", err)
	}
}

func TestFirstAnswer(t *testing.T) {
	answers := map[string]any{"selected_date": "2024-06-03", "date": "ignored", "count": 3}

	if got := firstAnswer(answers, "selected_date", "date"); got != "2024-06-03" {
		t.Errorf("firstAnswer preferred wrong key: %q", got)
	}
	if got := firstAnswer(answers, "missing", "date"); got != "ignored" {
		t.Errorf("firstAnswer fallback = %q, want %q", got, "ignored")
	}
	if got := firstAnswer(answers, "count"); got != "" {
		t.Errorf("non-string answer should read empty, got %q", got)
	}
	if got := firstAnswer(nil, "anything"); got != "" {
		t.Errorf("nil answers should read empty, got %q", got)
	}
}

func TestDailyStatsBuckets(t *testing.T) {
	now := time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC)

	bookings := []*models.Booking{
		{LocalDate: "2024-06-09", Status: models.BookingBooked},
		{LocalDate: "2024-06-09", Status: models.BookingCancelled},
		{LocalDate: "2024-06-03", Status: models.BookingCompleted},
		{LocalDate: "2024-05-01", Status: models.BookingBooked}, // outside the window
	}

	buckets := dailyStats(bookings, now)
	if len(buckets) != dailyStatDays {
		t.Fatalf("expected %d buckets, got %d", dailyStatDays, len(buckets))
	}
	if buckets[0].Date != "2024-06-03" || buckets[6].Date != "2024-06-09" {
		t.Fatalf("bucket range = %q..%q", buckets[0].Date, buckets[6].Date)
	}

	last := buckets[6]
	if last.Bookings != 2 || last.Cancellations != 1 {
		t.Errorf("today bucket = %+v", last)
	}
	first := buckets[0]
	if first.Bookings != 1 || first.Completed != 1 {
		t.Errorf("monday bucket = %+v", first)
	}

	total := 0
	for _, b := range buckets {
		total += b.Bookings
	}
	if total != 3 {
		t.Errorf("window total = %d, want 3", total)
	}
}

func TestMonthlyStatsAnchor(t *testing.T) {
	// A month-end date must not skip short months when walking backwards.
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	buckets := monthlyStats(nil, now)
	if len(buckets) != monthlyStatSpan {
		t.Fatalf("expected %d buckets, got %d", monthlyStatSpan, len(buckets))
	}

	want := []string{"Oct 2023", "Nov 2023", "Dec 2023", "Jan 2024", "Feb 2024", "Mar 2024"}
	for i, bucket := range buckets {
		if bucket.Month != want[i] {
			t.Errorf("bucket[%d].Month = %q, want %q", i, bucket.Month, want[i])
		}
	}
}

func TestBookingDayFallsBackToInstant(t *testing.T) {
	instant := time.Date(2024, 6, 3, 3, 30, 0, 0, time.UTC)

	withDate := &models.Booking{LocalDate: "2024-06-04", StartAt: &instant}
	if got := bookingDay(withDate); got != "2024-06-04" {
		t.Errorf("local date should win, got %q", got)
	}

	withInstant := &models.Booking{StartAt: &instant}
	if got := bookingDay(withInstant); got != "2024-06-03" {
		t.Errorf("instant fallback = %q, want %q", got, "2024-06-03")
	}

	if got := bookingDay(&models.Booking{}); got != "" {
		t.Errorf("empty booking day = %q, want empty", got)
	}
}
