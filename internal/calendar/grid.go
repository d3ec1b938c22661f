package calendar

import "time"

const (
	// DefaultPixelsPerMinute matches the week view's 0.8px minute height.
	DefaultPixelsPerMinute = 0.8
	// DefaultMinEventHeight keeps very short meetings clickable.
	DefaultMinEventHeight = 32
)

// Geometry is an event's placement in a day column.
type Geometry struct {
	Day    int     `json:"day"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// PlacedEvent is an event with its computed geometry.
type PlacedEvent struct {
	Event
	Geometry Geometry
}

// Grid computes week-view geometry. The zero value uses the defaults.
type Grid struct {
	PixelsPerMinute float64
	MinEventHeight  float64
}

// Layout buckets events into the window's 7 day columns and computes each
// event's vertical offset and height. Bucketing is by exact calendar day of
// the event's start, so every in-window event lands in exactly one bucket;
// events outside the window are dropped. Overlapping geometry is allowed —
// concurrent meetings are a rendering concern, not an error.
func (g Grid) Layout(w Window, events []Event) [7][]PlacedEvent {
	ppm := g.PixelsPerMinute
	if ppm <= 0 {
		ppm = DefaultPixelsPerMinute
	}
	minHeight := g.MinEventHeight
	if minHeight <= 0 {
		minHeight = DefaultMinEventHeight
	}

	days := w.Days()

	var placed [7][]PlacedEvent
	for _, event := range events {
		for i, day := range days {
			if !sameDay(event.Start, day) {
				continue
			}
			placed[i] = append(placed[i], PlacedEvent{
				Event:    event,
				Geometry: g.geometry(event, i, ppm, minHeight),
			})
			break
		}
	}

	return placed
}

func (g Grid) geometry(event Event, day int, ppm, minHeight float64) Geometry {
	start := event.Start
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	minutesFromStart := start.Sub(dayStart).Minutes()
	durationMinutes := event.End.Sub(event.Start).Minutes()

	top := minutesFromStart * ppm
	if top < 0 {
		top = 0
	}
	height := durationMinutes * ppm
	if height < minHeight {
		height = minHeight
	}

	return Geometry{Day: day, Top: top, Height: height}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
