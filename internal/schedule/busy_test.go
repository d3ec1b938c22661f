package schedule

import "testing"

func candidateSlots(times ...string) []TimeSlot {
	slots := make([]TimeSlot, 0, len(times))
	for _, tm := range times {
		slots = append(slots, TimeSlot{Time: tm, Display: tm})
	}
	return slots
}

func slotTimes(slots []TimeSlot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times
}

func TestFilterBusy_RemovesBookedSlot(t *testing.T) {
	candidates := candidateSlots("09:00", "09:30", "10:00")
	// 09:30 UTC on a summer date, requested in UTC.
	busy := []BusyEntry{{Time: "2024-06-05T09:30:00Z", Status: "booked"}}

	free := FilterBusy(candidates, busy, "UTC")

	got := slotTimes(free)
	if len(got) != 2 || got[0] != "09:00" || got[1] != "10:00" {
		t.Fatalf("expected [09:00 10:00], got %v", got)
	}
}

func TestFilterBusy_CancelledBookingDoesNotBlock(t *testing.T) {
	candidates := candidateSlots("09:00", "09:30", "10:00")
	busy := []BusyEntry{{Time: "2024-06-05T09:30:00Z", Status: StatusCancelled}}

	free := FilterBusy(candidates, busy, "UTC")

	if len(free) != 3 {
		t.Fatalf("expected all 3 slots free, got %v", slotTimes(free))
	}
}

func TestFilterBusy_ComparesInRequestedZone(t *testing.T) {
	candidates := candidateSlots("09:00", "09:30", "10:00")
	// 13:30 UTC reads 09:30 in New York (EDT).
	busy := []BusyEntry{{Time: "2024-06-05T13:30:00Z", Status: "booked"}}

	free := FilterBusy(candidates, busy, "America/New_York")

	got := slotTimes(free)
	if len(got) != 2 || got[0] != "09:00" || got[1] != "10:00" {
		t.Fatalf("expected [09:00 10:00], got %v", got)
	}
}

// An unparsable stored instant contributes no busy key: it blocks nothing,
// never everything. Policy favors availability over conservatism.
func TestFilterBusy_UnparsableInstantBlocksNothing(t *testing.T) {
	candidates := candidateSlots("09:00", "09:30", "10:00")
	busy := []BusyEntry{
		{Time: "not-a-timestamp", Status: "booked"},
		{Time: "", Status: "booked"},
	}

	free := FilterBusy(candidates, busy, "UTC")

	if len(free) != 3 {
		t.Fatalf("expected all 3 slots free, got %v", slotTimes(free))
	}
}

func TestFilterBusy_UnknownZoneBlocksNothing(t *testing.T) {
	candidates := candidateSlots("09:00", "09:30")
	busy := []BusyEntry{{Time: "2024-06-05T09:30:00Z", Status: "booked"}}

	free := FilterBusy(candidates, busy, "Not/A_Zone")

	if len(free) != 2 {
		t.Fatalf("expected all slots free when zone is unknown, got %v", slotTimes(free))
	}
}

func TestFilterBusy_AllSlotsBookedYieldsEmpty(t *testing.T) {
	candidates := candidateSlots("09:00", "09:30")
	busy := []BusyEntry{
		{Time: "2024-06-05T09:00:00Z", Status: "booked"},
		{Time: "2024-06-05T09:30:00Z", Status: "completed"},
	}

	free := FilterBusy(candidates, busy, "UTC")

	if len(free) != 0 {
		t.Fatalf("expected no free slots, got %v", slotTimes(free))
	}
}
