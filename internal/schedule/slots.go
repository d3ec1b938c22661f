package schedule

import "fmt"

// TimeSlot is a candidate bookable time in the requested zone. Ephemeral:
// recomputed per request, never persisted.
type TimeSlot struct {
	Time    string `json:"time"`
	Display string `json:"display"`
}

const (
	businessStartMinutes = 9 * 60  // 09:00
	businessEndMinutes   = 17 * 60 // 17:00

	defaultStepMinutes = 30
)

// Generate returns the candidate slots for one business day, stepped by
// durationMinutes from 09:00. A slot is emitted only when it fits entirely
// before 17:00, so for a 45-minute duration the last start is 15:45.
// The window is the meeting page's inherent business hours and is
// deliberately time-zone-naive.
func Generate(durationMinutes int) []TimeSlot {
	step := durationMinutes
	if step <= 0 {
		step = defaultStepMinutes
	}

	var slots []TimeSlot
	for minutes := businessStartMinutes; minutes+step <= businessEndMinutes; minutes += step {
		slots = append(slots, TimeSlot{
			Time:    formatTimeValue(minutes),
			Display: formatDisplayTime(minutes),
		})
	}

	return slots
}

func formatTimeValue(totalMinutes int) string {
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

func formatDisplayTime(totalMinutes int) string {
	hours24 := totalMinutes / 60
	minutes := totalMinutes % 60

	suffix := "AM"
	if hours24 >= 12 {
		suffix = "PM"
	}
	hours12 := (hours24+11)%12 + 1

	return fmt.Sprintf("%d:%02d %s", hours12, minutes, suffix)
}
