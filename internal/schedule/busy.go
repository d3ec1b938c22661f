package schedule

import "time"

// BusyEntry is one upstream booking record for a day: its stored instant
// (RFC 3339) and lifecycle status.
type BusyEntry struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

const StatusCancelled = "cancelled"

// FilterBusy removes candidates occupied by a non-cancelled booking, comparing
// by wall-clock key in the requested zone.
//
// A booking whose instant does not parse, or that cannot be rendered in the
// zone, contributes no busy key: it never blocks a slot. That trades
// conservatism for availability and is relied upon by callers.
func FilterBusy(candidates []TimeSlot, busy []BusyEntry, zone string) []TimeSlot {
	busyKeys := make(map[string]struct{}, len(busy))
	for _, entry := range busy {
		if entry.Status == StatusCancelled {
			continue
		}

		instant, err := time.Parse(time.RFC3339, entry.Time)
		if err != nil {
			continue
		}

		key, ok := TimeKey(instant, zone)
		if !ok {
			continue
		}
		busyKeys[key] = struct{}{}
	}

	free := make([]TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := busyKeys[slot.Time]; taken {
			continue
		}
		free = append(free, slot)
	}

	return free
}
