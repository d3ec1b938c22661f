package schedule

import (
	"sync"
	"testing"
)

func TestSession_LastIssuedWins(t *testing.T) {
	var s Session

	// Fetch A is issued, then fetch B; B completes first, then A.
	tokenA := s.Begin()
	tokenB := s.Begin()

	slotsB := candidateSlots("10:00", "10:30")
	if !s.Accept(tokenB, slotsB) {
		t.Fatalf("expected B's result to be accepted")
	}

	slotsA := candidateSlots("09:00", "09:30")
	if s.Accept(tokenA, slotsA) {
		t.Fatalf("expected A's stale result to be discarded")
	}

	current := s.Current()
	if len(current) != 2 || current[0].Time != "10:00" {
		t.Fatalf("expected B's slots to remain visible, got %v", slotTimes(current))
	}
}

func TestSession_AcceptThenSupersede(t *testing.T) {
	var s Session

	first := s.Begin()
	if !s.Accept(first, candidateSlots("09:00")) {
		t.Fatalf("expected first result accepted")
	}

	second := s.Begin()
	// Re-delivering the old token after a new request began must be refused.
	if s.Accept(first, candidateSlots("11:00")) {
		t.Fatalf("expected superseded token to be refused")
	}
	if !s.Accept(second, candidateSlots("10:00")) {
		t.Fatalf("expected newest token accepted")
	}

	if got := s.Current(); len(got) != 1 || got[0].Time != "10:00" {
		t.Fatalf("expected [10:00], got %v", slotTimes(got))
	}
}

func TestSession_ConcurrentCompletions(t *testing.T) {
	var s Session

	tokens := make([]Token, 50)
	for i := range tokens {
		tokens[i] = s.Begin()
	}
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token Token) {
			defer wg.Done()
			s.Accept(token, candidateSlots(Generate(30)[i%16].Time))
		}(i, token)
	}
	wg.Wait()

	want := candidateSlots(Generate(30)[(len(tokens)-1)%16].Time)
	got := s.Current()
	if len(got) != 1 || got[0].Time != want[0].Time {
		t.Fatalf("expected newest result %v, got %v", slotTimes(want), slotTimes(got))
	}
}
