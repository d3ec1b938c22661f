package api

import (
	"time"

	"meetly-service/internal/models"
)

// Meeting pages

type MeetingPageRequest struct {
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	Slug            string               `json:"slug,omitempty"`
	EventType       string               `json:"event_type,omitempty"`
	DurationMinutes int                  `json:"duration_minutes"`
	LayoutStyle     string               `json:"layout_style,omitempty"`
	MeetingLink     string               `json:"meeting_link,omitempty"`
	Active          *bool                `json:"active,omitempty"`
	Theme           models.ThemeConfig   `json:"theme"`
	Fields          []models.FieldConfig `json:"fields"`
}

type MeetingPageResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user,omitempty"`
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	Slug            string               `json:"slug"`
	EventType       string               `json:"event_type"`
	DurationMinutes int                  `json:"duration_minutes"`
	LayoutStyle     string               `json:"layout_style"`
	MeetingLink     string               `json:"meeting_link,omitempty"`
	Active          bool                 `json:"active"`
	Theme           models.ThemeConfig   `json:"theme"`
	Fields          []models.FieldConfig `json:"fields"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// Bookings

type BookingRequest struct {
	MeetingPage   string         `json:"meeting_page"`
	UserInput     map[string]any `json:"user_input"`
	Date          string         `json:"date"`
	AttendeeName  string         `json:"attendee_name,omitempty"`
	AttendeeEmail string         `json:"attendee_email,omitempty"`
	Notes         string         `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID            string         `json:"id"`
	MeetingPage   string         `json:"meeting_page"`
	UserInput     map[string]any `json:"user_input,omitempty"`
	Date          string         `json:"date"`
	Timezone      string         `json:"timezone,omitempty"`
	Status        string         `json:"status"`
	AttendeeName  string         `json:"attendee_name"`
	AttendeeEmail string         `json:"attendee_email"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Availability rules

type AvailabilityRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

type AvailabilityResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user,omitempty"`
	Weekday        int       `json:"weekday"`
	WeekdayDisplay string    `json:"weekday_display"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Calendar week view

type CalendarEvent struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	MeetingPageID string    `json:"meeting_page_id"`
	Notes         string    `json:"notes,omitempty"`
	MeetingLink   string    `json:"meeting_link,omitempty"`
	Day           int       `json:"day"`
	Top           float64   `json:"top"`
	Height        float64   `json:"height"`
}

type CalendarDay struct {
	Date   string          `json:"date"`
	Events []CalendarEvent `json:"events"`
}

type CalendarWeekResponse struct {
	WeekStart  string        `json:"week_start"`
	RangeLabel string        `json:"range_label"`
	Days       []CalendarDay `json:"days"`
}

// Customers

type CustomerResponse struct {
	ID            string         `json:"id"`
	MeetingPage   string         `json:"meeting_page"`
	AttendeeName  string         `json:"attendee_name"`
	AttendeeEmail string         `json:"attendee_email"`
	BookingDate   string         `json:"booking_date"`
	Timezone      string         `json:"timezone,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	UserInput     map[string]any `json:"user_input,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Analytics

type StatBucket struct {
	Date          string `json:"date,omitempty"`
	Week          string `json:"week,omitempty"`
	Month         string `json:"month,omitempty"`
	Bookings      int    `json:"bookings"`
	Cancellations int    `json:"cancellations"`
	Completed     int    `json:"completed"`
}

type AnalyticsResponse struct {
	TotalBookings             int          `json:"total_bookings"`
	TotalCancellations        int          `json:"total_cancellations"`
	TotalCompleted            int          `json:"total_completed"`
	AverageBookingRatePerWeek float64      `json:"average_booking_rate_per_week"`
	UpcomingMeetingsCount     int          `json:"upcoming_meetings_count"`
	DailyStats                []StatBucket `json:"daily_stats"`
	WeeklyStats               []StatBucket `json:"weekly_stats"`
	MonthlyStats              []StatBucket `json:"monthly_stats"`
}
