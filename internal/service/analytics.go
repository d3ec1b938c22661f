package service

import (
	"context"
	"fmt"
	"time"

	"meetly-service/api"
	"meetly-service/internal/calendar"
	"meetly-service/internal/models"
)

const (
	dailyStatDays   = 7
	weeklyStatWeeks = 8
	monthlyStatSpan = 6
	hoursPerWeek    = 7 * 24
)

// Analytics aggregates the booking ledger into the dashboard counters and
// daily/weekly/monthly buckets.
func (s *Service) Analytics(ctx context.Context) (*api.AnalyticsResponse, error) {
	const op = "service.Analytics"

	bookings, err := s.store.ListBookings(ctx, nil, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	resp := &api.AnalyticsResponse{
		TotalBookings: len(bookings),
	}

	var firstCreated time.Time
	for _, booking := range bookings {
		switch booking.Status {
		case models.BookingCancelled:
			resp.TotalCancellations++
		case models.BookingCompleted:
			resp.TotalCompleted++
		}
		if booking.Status == models.BookingBooked && booking.StartAt != nil && booking.StartAt.After(now) {
			resp.UpcomingMeetingsCount++
		}
		if firstCreated.IsZero() || booking.CreatedAt.Before(firstCreated) {
			firstCreated = booking.CreatedAt
		}
	}

	if len(bookings) > 0 {
		weeks := now.Sub(firstCreated).Hours() / hoursPerWeek
		if weeks < 1 {
			weeks = 1
		}
		resp.AverageBookingRatePerWeek = float64(len(bookings)) / weeks
	}

	resp.DailyStats = dailyStats(bookings, now)
	resp.WeeklyStats = weeklyStats(bookings, now)
	resp.MonthlyStats = monthlyStats(bookings, now)

	return resp, nil
}

func bumpBucket(bucket *api.StatBucket, status models.BookingStatus) {
	bucket.Bookings++
	switch status {
	case models.BookingCancelled:
		bucket.Cancellations++
	case models.BookingCompleted:
		bucket.Completed++
	}
}

// bookingDay is the booking's local calendar day, falling back to the
// resolved instant's UTC day for older records.
func bookingDay(booking *models.Booking) string {
	if booking.LocalDate != "" {
		return booking.LocalDate
	}
	if booking.StartAt != nil {
		return booking.StartAt.UTC().Format("2006-01-02")
	}
	return ""
}

func dailyStats(bookings []*models.Booking, now time.Time) []api.StatBucket {
	buckets := make([]api.StatBucket, dailyStatDays)
	index := make(map[string]int, dailyStatDays)
	for i := 0; i < dailyStatDays; i++ {
		day := now.AddDate(0, 0, i-dailyStatDays+1).Format("2006-01-02")
		buckets[i] = api.StatBucket{Date: day}
		index[day] = i
	}

	for _, booking := range bookings {
		if i, ok := index[bookingDay(booking)]; ok {
			bumpBucket(&buckets[i], booking.Status)
		}
	}

	return buckets
}

func weeklyStats(bookings []*models.Booking, now time.Time) []api.StatBucket {
	buckets := make([]api.StatBucket, weeklyStatWeeks)
	index := make(map[string]int, weeklyStatWeeks)
	window := calendar.ThisWeek(now).Shift(1 - weeklyStatWeeks)
	for i := 0; i < weeklyStatWeeks; i++ {
		year, week := window.Start.ISOWeek()
		label := fmt.Sprintf("%d-W%02d", year, week)
		buckets[i] = api.StatBucket{Week: label}
		index[label] = i
		window = window.Shift(1)
	}

	for _, booking := range bookings {
		day := bookingDay(booking)
		if day == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		year, week := parsed.ISOWeek()
		if i, ok := index[fmt.Sprintf("%d-W%02d", year, week)]; ok {
			bumpBucket(&buckets[i], booking.Status)
		}
	}

	return buckets
}

func monthlyStats(bookings []*models.Booking, now time.Time) []api.StatBucket {
	buckets := make([]api.StatBucket, monthlyStatSpan)
	index := make(map[string]int, monthlyStatSpan)
	// Anchor to the first of the month so month arithmetic never normalizes
	// across a short month.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < monthlyStatSpan; i++ {
		month := anchor.AddDate(0, i-monthlyStatSpan+1, 0).Format("Jan 2006")
		buckets[i] = api.StatBucket{Month: month}
		index[month] = i
	}

	for _, booking := range bookings {
		day := bookingDay(booking)
		if day == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		if i, ok := index[parsed.Format("Jan 2006")]; ok {
			bumpBucket(&buckets[i], booking.Status)
		}
	}

	return buckets
}
