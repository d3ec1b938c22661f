package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetly-service/api"
	"meetly-service/internal/calendar"
	"meetly-service/internal/lock"
	"meetly-service/internal/models"
	"meetly-service/internal/schedule"
	"meetly-service/pkg/response"
	"meetly-service/pkg/sl"
)

type Store interface {
	// Meeting Pages
	CreateMeetingPage(ctx context.Context, page *models.MeetingPage) (string, error)
	GetMeetingPage(ctx context.Context, id string) (*models.MeetingPage, error)
	GetMeetingPageBySlug(ctx context.Context, slug string) (*models.MeetingPage, error)
	ListMeetingPages(ctx context.Context) ([]*models.MeetingPage, error)
	UpdateMeetingPage(ctx context.Context, page *models.MeetingPage) error
	DeleteMeetingPage(ctx context.Context, id string) error

	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) (string, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, pageID *string, from, to *time.Time, status *string) ([]*models.Booking, error)
	ListUpcomingBookings(ctx context.Context, now time.Time, limit int) ([]*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	DaySlots(ctx context.Context, meetingPageID, dateISO string) ([]schedule.BusyEntry, error)
	SlotTaken(ctx context.Context, meetingPageID, dateISO, hhmm string) (bool, error)

	// Availability Rules
	CreateAvailability(ctx context.Context, rule *models.AvailabilityRule) (string, error)
	GetAvailability(ctx context.Context, id string) (*models.AvailabilityRule, error)
	ListAvailabilities(ctx context.Context) ([]*models.AvailabilityRule, error)
	UpdateAvailability(ctx context.Context, rule *models.AvailabilityRule) error
	DeleteAvailability(ctx context.Context, id string) error

	// Customers
	CreateCustomer(ctx context.Context, customer *models.Customer) (string, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
}

// Options carries booking and layout tunables from config.
type Options struct {
	DefaultTimezone string
	PixelsPerMinute float64
	MinEventHeight  float64
}

type Service struct {
	store           Store
	locker          lock.Locker
	log             *slog.Logger
	engine          *schedule.Engine
	grid            calendar.Grid
	defaultTimezone string
}

const (
	slotLockTTL      = 10 * time.Second
	upcomingLimit    = 10
	defaultTimezone  = "Asia/Kolkata"
	defaultEventType = "default"
)

func NewService(log *slog.Logger, store Store, locker lock.Locker, opts Options) *Service {
	tz := opts.DefaultTimezone
	if tz == "" {
		tz = defaultTimezone
	}

	s := &Service{
		store:           store,
		locker:          locker,
		log:             log,
		grid:            calendar.Grid{PixelsPerMinute: opts.PixelsPerMinute, MinEventHeight: opts.MinEventHeight},
		defaultTimezone: tz,
	}
	s.engine = schedule.NewEngine(log, pageDurations{store: store}, daySource{store: store})

	return s
}

// pageDurations and daySource adapt the store to the slot engine's reads.
type pageDurations struct{ store Store }

func (p pageDurations) PageDuration(ctx context.Context, meetingPageID string) (int, error) {
	page, err := p.store.GetMeetingPage(ctx, meetingPageID)
	if err != nil {
		return 0, err
	}
	return page.DurationMinutes, nil
}

type daySource struct{ store Store }

func (d daySource) DaySlots(ctx context.Context, meetingPageID, dateISO string) ([]schedule.BusyEntry, error) {
	return d.store.DaySlots(ctx, meetingPageID, dateISO)
}

// Meeting Pages

func (s *Service) CreateMeetingPage(ctx context.Context, req *api.MeetingPageRequest) (*api.MeetingPageResponse, error) {
	const op = "service.CreateMeetingPage"

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%s: title is required: %w", op, response.ErrValidation)
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%s: duration_minutes must be positive: %w", op, response.ErrValidation)
	}

	fields, err := normalizeFields(req.Fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = defaultEventType
	}

	page := &models.MeetingPage{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		Slug:            slug,
		EventType:       eventType,
		DurationMinutes: req.DurationMinutes,
		LayoutStyle:     req.LayoutStyle,
		MeetingLink:     req.MeetingLink,
		Active:          active,
		Theme:           req.Theme,
		Fields:          fields,
	}

	id, err := s.store.CreateMeetingPage(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetMeetingPage(ctx, id)
}

func (s *Service) GetMeetingPage(ctx context.Context, id string) (*api.MeetingPageResponse, error) {
	const op = "service.GetMeetingPage"

	page, err := s.store.GetMeetingPage(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pageToResponse(page), nil
}

func (s *Service) GetMeetingPageBySlug(ctx context.Context, slug string) (*api.MeetingPageResponse, error) {
	const op = "service.GetMeetingPageBySlug"

	page, err := s.store.GetMeetingPageBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pageToResponse(page), nil
}

func (s *Service) ListMeetingPages(ctx context.Context) ([]*api.MeetingPageResponse, error) {
	const op = "service.ListMeetingPages"

	pages, err := s.store.ListMeetingPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.MeetingPageResponse, 0, len(pages))
	for _, page := range pages {
		result = append(result, pageToResponse(page))
	}

	return result, nil
}

func (s *Service) UpdateMeetingPage(ctx context.Context, id string, req *api.MeetingPageRequest) (*api.MeetingPageResponse, error) {
	const op = "service.UpdateMeetingPage"

	page, err := s.store.GetMeetingPage(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%s: duration_minutes must be positive: %w", op, response.ErrValidation)
	}

	fields, err := normalizeFields(req.Fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.Title != "" {
		page.Title = req.Title
	}
	if req.Slug != "" {
		page.Slug = req.Slug
	}
	if req.EventType != "" {
		page.EventType = req.EventType
	}
	if req.LayoutStyle != "" {
		page.LayoutStyle = req.LayoutStyle
	}
	if req.Active != nil {
		page.Active = *req.Active
	}
	page.Description = req.Description
	page.MeetingLink = req.MeetingLink
	page.DurationMinutes = req.DurationMinutes
	page.Theme = req.Theme
	page.Fields = fields

	if err := s.store.UpdateMeetingPage(ctx, page); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetMeetingPage(ctx, id)
}

func (s *Service) DeleteMeetingPage(ctx context.Context, id string) error {
	const op = "service.DeleteMeetingPage"

	if err := s.store.DeleteMeetingPage(ctx, id); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Slots

// AvailableSlots is the public guest read. It never returns an error: the
// booking page must always have something bookable, so upstream trouble
// degrades to the deterministic business-hours fallback inside the engine.
func (s *Service) AvailableSlots(ctx context.Context, meetingPageID, dateISO, timezone string) []schedule.TimeSlot {
	if timezone == "" {
		timezone = s.defaultTimezone
	}

	return s.engine.Slots(ctx, meetingPageID, dateISO, timezone)
}

// Bookings

func (s *Service) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	const op = "service.CreateBooking"

	localDate, localTime, err := splitBookingDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrValidation)
	}

	page, err := s.store.GetMeetingPage(ctx, req.MeetingPage)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkRequiredAnswers(page.Fields, req.UserInput); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	zone := answerString(req.UserInput, "timezone")
	if zone == "" {
		zone = s.defaultTimezone
	}

	lockKey := fmt.Sprintf("slot:%s:%s:%s", page.ID, localDate, localTime)

	locked, err := s.locker.Lock(ctx, lockKey, slotLockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	taken, err := s.store.SlotTaken(ctx, page.ID, localDate, localTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil, fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
	}

	attendeeName := req.AttendeeName
	if attendeeName == "" {
		attendeeName = firstAnswer(req.UserInput, "name", "attendee_name")
	}
	if attendeeName == "" {
		attendeeName = "Guest"
	}
	attendeeEmail := req.AttendeeEmail
	if attendeeEmail == "" {
		attendeeEmail = firstAnswer(req.UserInput, "email", "attendee_email")
	}

	booking := &models.Booking{
		ID:            uuid.NewString(),
		MeetingPageID: page.ID,
		UserInput:     req.UserInput,
		LocalDate:     localDate,
		LocalTime:     localTime,
		Timezone:      zone,
		Status:        models.BookingBooked,
		AttendeeName:  attendeeName,
		AttendeeEmail: attendeeEmail,
		Notes:         req.Notes,
	}

	// Unresolvable instant is tolerated: the record is stored and simply
	// never occupies a calendar cell.
	if startAt, ok := calendar.ResolveInstant(localDate, localTime, zone); ok {
		booking.StartAt = &startAt
	} else {
		s.log.Warn("Booking stored without resolvable start instant",
			slog.String("op", op), slog.String("booking_id", booking.ID))
	}

	bookingID, err := s.store.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("%s: create booking: %w", op, err)
	}

	// Customer ledger is best-effort; a failure must not lose the booking.
	customer := &models.Customer{
		ID:            uuid.NewString(),
		MeetingPageID: page.ID,
		AttendeeName:  attendeeName,
		AttendeeEmail: attendeeEmail,
		BookingDate:   req.Date,
		Timezone:      zone,
		Notes:         req.Notes,
		UserInput:     req.UserInput,
	}
	if _, err := s.store.CreateCustomer(ctx, customer); err != nil {
		s.log.Warn("Failed to create customer record", slog.String("op", op), sl.Err(err))
	}

	return s.GetBooking(ctx, bookingID)
}

func (s *Service) GetBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	const op = "service.GetBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookingToResponse(booking), nil
}

func (s *Service) ListBookings(ctx context.Context, pageID *string, from, to *time.Time, status *string) ([]*api.BookingResponse, error) {
	const op = "service.ListBookings"

	bookings, err := s.store.ListBookings(ctx, pageID, from, to, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, bookingToResponse(booking))
	}

	return result, nil
}

func (s *Service) UpcomingBookings(ctx context.Context) ([]*api.BookingResponse, error) {
	const op = "service.UpcomingBookings"

	bookings, err := s.store.ListUpcomingBookings(ctx, time.Now(), upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, bookingToResponse(booking))
	}

	return result, nil
}

func (s *Service) CancelBooking(ctx context.Context, bookingID string) (*api.BookingResponse, error) {
	const op = "service.CancelBooking"

	if err := s.store.UpdateBookingStatus(ctx, bookingID, models.BookingCancelled); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBooking(ctx, bookingID)
}

func (s *Service) CompleteBooking(ctx context.Context, bookingID string) (*api.BookingResponse, error) {
	const op = "service.CompleteBooking"

	if err := s.store.UpdateBookingStatus(ctx, bookingID, models.BookingCompleted); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBooking(ctx, bookingID)
}

// Calendar

// CalendarWeek builds the week view for the window containing dateISO
// (empty means today): the 7 Monday-first day boundaries, the range label,
// and every placeable non-cancelled booking with its grid geometry.
func (s *Service) CalendarWeek(ctx context.Context, dateISO string) (*api.CalendarWeekResponse, error) {
	const op = "service.CalendarWeek"

	ref := time.Now().UTC()
	if dateISO != "" {
		parsed, err := time.Parse("2006-01-02", dateISO)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrValidation)
		}
		ref = parsed
	}
	window := calendar.At(ref)

	pages, err := s.store.ListMeetingPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// The stored instant is UTC while grid placement goes by the booking's
	// own wall-clock date, so a week-boundary booking in a zone ahead of or
	// behind UTC can resolve up to a day outside the window. Fetch a day
	// wide on both sides and let the wall-clock bucketing prune.
	from, to := window.Start.AddDate(0, 0, -1), window.End().AddDate(0, 0, 1)
	bookings, err := s.store.ListBookings(ctx, nil, &from, &to, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	visible := make([]models.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.Status == models.BookingCancelled {
			continue
		}
		visible = append(visible, *booking)
	}

	pageValues := make([]models.MeetingPage, 0, len(pages))
	for _, page := range pages {
		pageValues = append(pageValues, *page)
	}

	projector := calendar.NewProjector(s.log, pageValues)
	events := projector.ProjectAll(visible)
	placed := s.grid.Layout(window, events)

	days := window.Days()
	resp := &api.CalendarWeekResponse{
		WeekStart:  days[0].Format("2006-01-02"),
		RangeLabel: window.RangeLabel(),
		Days:       make([]api.CalendarDay, 0, len(days)),
	}

	for i, day := range days {
		dayEvents := make([]api.CalendarEvent, 0, len(placed[i]))
		for _, p := range placed[i] {
			dayEvents = append(dayEvents, api.CalendarEvent{
				ID:            p.ID,
				Title:         p.Title,
				AttendeeName:  p.AttendeeName,
				AttendeeEmail: p.AttendeeEmail,
				Start:         p.Start,
				End:           p.End,
				MeetingPageID: p.MeetingPageID,
				Notes:         p.Notes,
				MeetingLink:   p.MeetingLink,
				Day:           p.Geometry.Day,
				Top:           p.Geometry.Top,
				Height:        p.Geometry.Height,
			})
		}
		resp.Days = append(resp.Days, api.CalendarDay{
			Date:   day.Format("2006-01-02"),
			Events: dayEvents,
		})
	}

	return resp, nil
}

// Availability Rules

func (s *Service) CreateAvailability(ctx context.Context, req *api.AvailabilityRequest) (*api.AvailabilityResponse, error) {
	const op = "service.CreateAvailability"

	rule := &models.AvailabilityRule{
		ID:        uuid.NewString(),
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  req.IsActive,
	}
	if err := validateAvailability(rule); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.store.CreateAvailability(ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAvailability(ctx, id)
}

func (s *Service) GetAvailability(ctx context.Context, id string) (*api.AvailabilityResponse, error) {
	const op = "service.GetAvailability"

	rule, err := s.store.GetAvailability(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return availabilityToResponse(rule), nil
}

func (s *Service) ListAvailabilities(ctx context.Context) ([]*api.AvailabilityResponse, error) {
	const op = "service.ListAvailabilities"

	rules, err := s.store.ListAvailabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.AvailabilityResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, availabilityToResponse(rule))
	}

	return result, nil
}

func (s *Service) UpdateAvailability(ctx context.Context, id string, req *api.AvailabilityRequest) (*api.AvailabilityResponse, error) {
	const op = "service.UpdateAvailability"

	rule, err := s.store.GetAvailability(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rule.Weekday = req.Weekday
	rule.StartTime = req.StartTime
	rule.EndTime = req.EndTime
	rule.IsActive = req.IsActive
	if err := validateAvailability(rule); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.UpdateAvailability(ctx, rule); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAvailability(ctx, id)
}

func (s *Service) DeleteAvailability(ctx context.Context, id string) error {
	const op = "service.DeleteAvailability"

	if err := s.store.DeleteAvailability(ctx, id); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Customers

func (s *Service) GetCustomer(ctx context.Context, id string) (*api.CustomerResponse, error) {
	const op = "service.GetCustomer"

	customer, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return customerToResponse(customer), nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*api.CustomerResponse, error) {
	const op = "service.ListCustomers"

	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		result = append(result, customerToResponse(customer))
	}

	return result, nil
}

// conversions

func pageToResponse(page *models.MeetingPage) *api.MeetingPageResponse {
	return &api.MeetingPageResponse{
		ID:              page.ID,
		UserID:          page.UserID,
		Title:           page.Title,
		Description:     page.Description,
		Slug:            page.Slug,
		EventType:       page.EventType,
		DurationMinutes: page.DurationMinutes,
		LayoutStyle:     page.LayoutStyle,
		MeetingLink:     page.MeetingLink,
		Active:          page.Active,
		Theme:           page.Theme,
		Fields:          page.Fields,
		CreatedAt:       page.CreatedAt,
		UpdatedAt:       page.UpdatedAt,
	}
}

func bookingToResponse(booking *models.Booking) *api.BookingResponse {
	date := ""
	if booking.LocalDate != "" && booking.LocalTime != "" {
		date = booking.LocalDate + "T" + booking.LocalTime + ":00"
	}

	return &api.BookingResponse{
		ID:            booking.ID,
		MeetingPage:   booking.MeetingPageID,
		UserInput:     booking.UserInput,
		Date:          date,
		Timezone:      booking.Timezone,
		Status:        string(booking.Status),
		AttendeeName:  booking.AttendeeName,
		AttendeeEmail: booking.AttendeeEmail,
		Notes:         booking.Notes,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}

func availabilityToResponse(rule *models.AvailabilityRule) *api.AvailabilityResponse {
	return &api.AvailabilityResponse{
		ID:             rule.ID,
		UserID:         rule.UserID,
		Weekday:        rule.Weekday,
		WeekdayDisplay: rule.WeekdayDisplay(),
		StartTime:      rule.StartTime,
		EndTime:        rule.EndTime,
		IsActive:       rule.IsActive,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
	}
}

func customerToResponse(customer *models.Customer) *api.CustomerResponse {
	return &api.CustomerResponse{
		ID:            customer.ID,
		MeetingPage:   customer.MeetingPageID,
		AttendeeName:  customer.AttendeeName,
		AttendeeEmail: customer.AttendeeEmail,
		BookingDate:   customer.BookingDate,
		Timezone:      customer.Timezone,
		Notes:         customer.Notes,
		UserInput:     customer.UserInput,
		CreatedAt:     customer.CreatedAt,
		UpdatedAt:     customer.UpdatedAt,
	}
}

// helpers

func validateAvailability(rule *models.AvailabilityRule) error {
	if rule.Weekday < 0 || rule.Weekday > 6 {
		return fmt.Errorf("weekday must be 0..6: %w", response.ErrValidation)
	}

	start, err := time.Parse("15:04", rule.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time: %w", response.ErrValidation)
	}
	end, err := time.Parse("15:04", rule.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time: %w", response.ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("end_time must be after start_time: %w", response.ErrValidation)
	}

	return nil
}

// normalizeFields enforces the reserved-field invariant: exactly one "name"
// and one "email" field, required, fixed type, sorted first; remaining
// fields keep their submitted relative order. Duplicate field names are
// rejected. Missing reserved fields are injected rather than rejected, so a
// bare builder submission still yields a usable form.
func normalizeFields(fields []models.FieldConfig) ([]models.FieldConfig, error) {
	seen := make(map[string]struct{}, len(fields))
	var nameField, emailField *models.FieldConfig
	var rest []models.FieldConfig

	sorted := make([]models.FieldConfig, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	for i := range sorted {
		field := sorted[i]
		if strings.TrimSpace(field.Name) == "" {
			return nil, fmt.Errorf("field name is required: %w", response.ErrValidation)
		}
		if _, dup := seen[field.Name]; dup {
			return nil, fmt.Errorf("duplicate field name %q: %w", field.Name, response.ErrValidation)
		}
		seen[field.Name] = struct{}{}

		switch field.Name {
		case models.ReservedFieldName:
			field.Required = true
			field.Type = models.FieldText
			nameField = &field
		case models.ReservedFieldEmail:
			field.Required = true
			field.Type = models.FieldEmail
			emailField = &field
		default:
			rest = append(rest, field)
		}
	}

	if nameField == nil {
		nameField = &models.FieldConfig{
			Type: models.FieldText, Label: "Name", Name: models.ReservedFieldName, Required: true,
		}
	}
	if emailField == nil {
		emailField = &models.FieldConfig{
			Type: models.FieldEmail, Label: "Email", Name: models.ReservedFieldEmail, Required: true,
		}
	}

	normalized := make([]models.FieldConfig, 0, len(rest)+2)
	normalized = append(normalized, *nameField, *emailField)
	normalized = append(normalized, rest...)

	for i := range normalized {
		if normalized[i].ID == "" {
			normalized[i].ID = "field_" + uuid.NewString()[:9]
		}
		normalized[i].Order = i
	}

	return normalized, nil
}

func checkRequiredAnswers(fields []models.FieldConfig, answers map[string]any) error {
	for _, field := range fields {
		if !field.Required {
			continue
		}
		if !answerPresent(answers, field.Name) {
			return fmt.Errorf("field %q is required: %w", field.Name, response.ErrValidation)
		}
	}
	return nil
}

// answerPresent reports whether a field got a usable answer. Form widgets
// submit non-string scalars (checkbox bool, number inputs); those count as
// answered.
func answerPresent(answers map[string]any, key string) bool {
	if answers == nil {
		return false
	}
	switch value := answers[key].(type) {
	case string:
		return strings.TrimSpace(value) != ""
	case bool, float64, int, int64:
		return true
	default:
		return false
	}
}

// splitBookingDate splits the submitted "2006-01-02T15:04:00" composite into
// its local date and "HH:MM" parts.
func splitBookingDate(date string) (string, string, error) {
	parsed, err := time.Parse("2006-01-02T15:04:05", date)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04", date)
	}
	if err != nil {
		return "", "", err
	}

	return parsed.Format("2006-01-02"), parsed.Format("15:04"), nil
}

func answerString(answers map[string]any, key string) string {
	if answers == nil {
		return ""
	}
	if value, ok := answers[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func firstAnswer(answers map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := answerString(answers, key); value != "" {
			return value
		}
	}
	return ""
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
