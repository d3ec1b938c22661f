package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"meetly-service/internal/models"
	"meetly-service/internal/schedule"
	"meetly-service/pkg/response"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// #### meeting pages ####

func (s *Storage) CreateMeetingPage(ctx context.Context, page *models.MeetingPage) (string, error) {
	const op = "storage.postgres.CreateMeetingPage"

	theme, fields, err := marshalPageJSON(page)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO meeting_pages
			(id, user_id, title, description, slug, theme, fields, layout_style,
			 event_type, meeting_link, active, duration_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())`,
		page.ID, page.UserID, page.Title, page.Description, page.Slug, theme, fields,
		page.LayoutStyle, page.EventType, page.MeetingLink, page.Active, page.DurationMinutes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, response.ErrConflict)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return page.ID, nil
}

const selectMeetingPage = `
	SELECT id, user_id, title, description, slug, theme, fields, layout_style,
	       event_type, meeting_link, active, duration_minutes, created_at, updated_at
	FROM meeting_pages`

func (s *Storage) GetMeetingPage(ctx context.Context, id string) (*models.MeetingPage, error) {
	const op = "storage.postgres.GetMeetingPage"

	row := s.db.QueryRowContext(ctx, selectMeetingPage+` WHERE id = $1`, id)

	page, err := scanMeetingPage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

func (s *Storage) GetMeetingPageBySlug(ctx context.Context, slug string) (*models.MeetingPage, error) {
	const op = "storage.postgres.GetMeetingPageBySlug"

	row := s.db.QueryRowContext(ctx, selectMeetingPage+` WHERE slug = $1 AND active`, slug)

	page, err := scanMeetingPage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

func (s *Storage) ListMeetingPages(ctx context.Context) ([]*models.MeetingPage, error) {
	const op = "storage.postgres.ListMeetingPages"

	rows, err := s.db.QueryContext(ctx, selectMeetingPage+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var pages []*models.MeetingPage
	for rows.Next() {
		page, err := scanMeetingPage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pages, nil
}

func (s *Storage) UpdateMeetingPage(ctx context.Context, page *models.MeetingPage) error {
	const op = "storage.postgres.UpdateMeetingPage"

	theme, fields, err := marshalPageJSON(page)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE meeting_pages
		SET title = $2, description = $3, slug = $4, theme = $5, fields = $6,
		    layout_style = $7, event_type = $8, meeting_link = $9, active = $10,
		    duration_minutes = $11, updated_at = now()
		WHERE id = $1`,
		page.ID, page.Title, page.Description, page.Slug, theme, fields,
		page.LayoutStyle, page.EventType, page.MeetingLink, page.Active, page.DurationMinutes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, response.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return requireRow(res, op)
}

func (s *Storage) DeleteMeetingPage(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteMeetingPage"

	res, err := s.db.ExecContext(ctx, `DELETE FROM meeting_pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return requireRow(res, op)
}

// #### bookings ####

func (s *Storage) CreateBooking(ctx context.Context, booking *models.Booking) (string, error) {
	const op = "storage.postgres.CreateBooking"

	userInput, err := marshalJSON(booking.UserInput)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var startAt sql.NullTime
	if booking.StartAt != nil {
		startAt = sql.NullTime{Time: *booking.StartAt, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bookings
			(id, meeting_page_id, user_input, local_date, local_time, timezone, start_at,
			 status, attendee_name, attendee_email, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`,
		booking.ID, booking.MeetingPageID, userInput, booking.LocalDate, booking.LocalTime,
		booking.Timezone, startAt, booking.Status, booking.AttendeeName, booking.AttendeeEmail,
		booking.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return booking.ID, nil
}

const selectBooking = `
	SELECT id, meeting_page_id, user_input, local_date, local_time, timezone, start_at,
	       status, attendee_name, attendee_email, notes, created_at, updated_at
	FROM bookings`

func (s *Storage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.postgres.GetBooking"

	row := s.db.QueryRowContext(ctx, selectBooking+` WHERE id = $1`, id)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return booking, nil
}

func (s *Storage) ListBookings(ctx context.Context, pageID *string, from, to *time.Time, status *string) ([]*models.Booking, error) {
	const op = "storage.postgres.ListBookings"

	var conds []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if pageID != nil {
		add("meeting_page_id = ?", *pageID)
	}
	if from != nil {
		add("start_at >= ?", *from)
	}
	if to != nil {
		add("start_at < ?", *to)
	}
	if status != nil {
		add("status = ?", *status)
	}

	query := selectBooking
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) ListUpcomingBookings(ctx context.Context, now time.Time, limit int) ([]*models.Booking, error) {
	const op = "storage.postgres.ListUpcomingBookings"

	rows, err := s.db.QueryContext(ctx,
		selectBooking+` WHERE start_at IS NOT NULL AND start_at >= $1 AND status = $2 ORDER BY start_at LIMIT $3`,
		now, models.BookingBooked, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	const op = "storage.postgres.UpdateBookingStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`,
		bookingID, status,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return requireRow(res, op)
}

// DaySlots returns the raw booking entries for a page and local date, as
// stored: the resolved instant rendered RFC 3339, or an empty string when
// the instant never resolved. Consumers treat an unreadable instant as
// non-blocking.
func (s *Storage) DaySlots(ctx context.Context, meetingPageID, dateISO string) ([]schedule.BusyEntry, error) {
	const op = "storage.postgres.DaySlots"

	rows, err := s.db.QueryContext(ctx,
		`SELECT start_at, status FROM bookings WHERE meeting_page_id = $1 AND local_date = $2`,
		meetingPageID, dateISO,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []schedule.BusyEntry
	for rows.Next() {
		var startAt sql.NullTime
		var status string
		if err := rows.Scan(&startAt, &status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		entry := schedule.BusyEntry{Status: status}
		if startAt.Valid {
			entry.Time = startAt.Time.Format(time.RFC3339)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

func (s *Storage) SlotTaken(ctx context.Context, meetingPageID, dateISO, hhmm string) (bool, error) {
	const op = "storage.postgres.SlotTaken"

	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE meeting_page_id = $1 AND local_date = $2 AND local_time = $3 AND status <> $4
		)`,
		meetingPageID, dateISO, hhmm, models.BookingCancelled,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return taken, nil
}

// #### availability rules ####

func (s *Storage) CreateAvailability(ctx context.Context, rule *models.AvailabilityRule) (string, error) {
	const op = "storage.postgres.CreateAvailability"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO availabilities
			(id, user_id, weekday, start_time, end_time, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`,
		rule.ID, rule.UserID, rule.Weekday, rule.StartTime, rule.EndTime, rule.IsActive,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return rule.ID, nil
}

const selectAvailability = `
	SELECT id, user_id, weekday, start_time, end_time, is_active, created_at, updated_at
	FROM availabilities`

func (s *Storage) GetAvailability(ctx context.Context, id string) (*models.AvailabilityRule, error) {
	const op = "storage.postgres.GetAvailability"

	var rule models.AvailabilityRule
	err := s.db.QueryRowContext(ctx, selectAvailability+` WHERE id = $1`, id).Scan(
		&rule.ID, &rule.UserID, &rule.Weekday, &rule.StartTime, &rule.EndTime,
		&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &rule, nil
}

func (s *Storage) ListAvailabilities(ctx context.Context) ([]*models.AvailabilityRule, error) {
	const op = "storage.postgres.ListAvailabilities"

	rows, err := s.db.QueryContext(ctx, selectAvailability+` ORDER BY weekday, start_time`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rules []*models.AvailabilityRule
	for rows.Next() {
		var rule models.AvailabilityRule
		if err := rows.Scan(
			&rule.ID, &rule.UserID, &rule.Weekday, &rule.StartTime, &rule.EndTime,
			&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rules, nil
}

func (s *Storage) UpdateAvailability(ctx context.Context, rule *models.AvailabilityRule) error {
	const op = "storage.postgres.UpdateAvailability"

	res, err := s.db.ExecContext(ctx, `
		UPDATE availabilities
		SET weekday = $2, start_time = $3, end_time = $4, is_active = $5, updated_at = now()
		WHERE id = $1`,
		rule.ID, rule.Weekday, rule.StartTime, rule.EndTime, rule.IsActive,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return requireRow(res, op)
}

func (s *Storage) DeleteAvailability(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteAvailability"

	res, err := s.db.ExecContext(ctx, `DELETE FROM availabilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return requireRow(res, op)
}

// #### customers ####

func (s *Storage) CreateCustomer(ctx context.Context, customer *models.Customer) (string, error) {
	const op = "storage.postgres.CreateCustomer"

	userInput, err := marshalJSON(customer.UserInput)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO customers
			(id, meeting_page_id, attendee_name, attendee_email, booking_date, timezone,
			 notes, user_input, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`,
		customer.ID, customer.MeetingPageID, customer.AttendeeName, customer.AttendeeEmail,
		customer.BookingDate, customer.Timezone, customer.Notes, userInput,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return customer.ID, nil
}

const selectCustomer = `
	SELECT id, meeting_page_id, attendee_name, attendee_email, booking_date, timezone,
	       notes, user_input, created_at, updated_at
	FROM customers`

func (s *Storage) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	const op = "storage.postgres.GetCustomer"

	row := s.db.QueryRowContext(ctx, selectCustomer+` WHERE id = $1`, id)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return customer, nil
}

func (s *Storage) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	const op = "storage.postgres.ListCustomers"

	rows, err := s.db.QueryContext(ctx, selectCustomer+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return customers, nil
}

// #### scan helpers ####

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeetingPage(row rowScanner) (*models.MeetingPage, error) {
	var page models.MeetingPage
	var theme, fields []byte

	err := row.Scan(
		&page.ID, &page.UserID, &page.Title, &page.Description, &page.Slug,
		&theme, &fields, &page.LayoutStyle, &page.EventType, &page.MeetingLink,
		&page.Active, &page.DurationMinutes, &page.CreatedAt, &page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(theme) > 0 {
		if err := json.Unmarshal(theme, &page.Theme); err != nil {
			return nil, err
		}
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &page.Fields); err != nil {
			return nil, err
		}
	}

	return &page, nil
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	var userInput []byte
	var startAt sql.NullTime

	err := row.Scan(
		&booking.ID, &booking.MeetingPageID, &userInput, &booking.LocalDate,
		&booking.LocalTime, &booking.Timezone, &startAt, &booking.Status,
		&booking.AttendeeName, &booking.AttendeeEmail, &booking.Notes,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(userInput) > 0 {
		if err := json.Unmarshal(userInput, &booking.UserInput); err != nil {
			return nil, err
		}
	}
	if startAt.Valid {
		t := startAt.Time
		booking.StartAt = &t
	}

	return &booking, nil
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var customer models.Customer
	var userInput []byte

	err := row.Scan(
		&customer.ID, &customer.MeetingPageID, &customer.AttendeeName, &customer.AttendeeEmail,
		&customer.BookingDate, &customer.Timezone, &customer.Notes, &userInput,
		&customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(userInput) > 0 {
		if err := json.Unmarshal(userInput, &customer.UserInput); err != nil {
			return nil, err
		}
	}

	return &customer, nil
}

func marshalPageJSON(page *models.MeetingPage) ([]byte, []byte, error) {
	theme, err := json.Marshal(page.Theme)
	if err != nil {
		return nil, nil, err
	}
	fields, err := json.Marshal(page.Fields)
	if err != nil {
		return nil, nil, err
	}
	return theme, fields, nil
}

func marshalJSON(value map[string]any) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
