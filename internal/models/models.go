package models

import "time"

type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldDropdown FieldType = "dropdown"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
)

// Reserved field names. Every meeting page carries exactly one of each,
// required, sorted first.
const (
	ReservedFieldName  = "name"
	ReservedFieldEmail = "email"
)

type FieldConfig struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Name        string    `json:"name"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Order       int       `json:"order"`
}

type ThemeConfig struct {
	PrimaryColor string `json:"primaryColor,omitempty"`
	AccentColor  string `json:"accentColor,omitempty"`
	ButtonStyle  string `json:"buttonStyle,omitempty"`
	FontFamily   string `json:"fontFamily,omitempty"`
}

type MeetingPage struct {
	ID              string        `db:"id"`
	UserID          string        `db:"user_id"`
	Title           string        `db:"title"`
	Description     string        `db:"description"`
	Slug            string        `db:"slug"`
	Theme           ThemeConfig   `db:"theme"`
	Fields          []FieldConfig `db:"fields"`
	LayoutStyle     string        `db:"layout_style"`
	EventType       string        `db:"event_type"`
	MeetingLink     string        `db:"meeting_link"`
	Active          bool          `db:"active"`
	DurationMinutes int           `db:"duration_minutes"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// Booking keeps the guest's local selection (date, time, zone) exactly as
// submitted; StartAt is the resolved absolute instant, nil when the stored
// triple could not be resolved.
type Booking struct {
	ID            string         `db:"id"`
	MeetingPageID string         `db:"meeting_page_id"`
	UserInput     map[string]any `db:"user_input"`
	LocalDate     string         `db:"local_date"`
	LocalTime     string         `db:"local_time"`
	Timezone      string         `db:"timezone"`
	StartAt       *time.Time     `db:"start_at"`
	Status        BookingStatus  `db:"status"`
	AttendeeName  string         `db:"attendee_name"`
	AttendeeEmail string         `db:"attendee_email"`
	Notes         string         `db:"notes"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// AvailabilityRule is a weekly recurring window, weekday 0=Monday..6=Sunday.
type AvailabilityRule struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Weekday   int       `db:"weekday"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (r *AvailabilityRule) WeekdayDisplay() string {
	if r.Weekday < 0 || r.Weekday >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[r.Weekday]
}

type Customer struct {
	ID            string         `db:"id"`
	MeetingPageID string         `db:"meeting_page_id"`
	AttendeeName  string         `db:"attendee_name"`
	AttendeeEmail string         `db:"attendee_email"`
	BookingDate   string         `db:"booking_date"`
	Timezone      string         `db:"timezone"`
	Notes         string         `db:"notes"`
	UserInput     map[string]any `db:"user_input"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
