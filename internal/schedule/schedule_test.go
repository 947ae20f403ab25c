package schedule

import (
	"errors"
	"testing"
	"time"
)

// 2025-06-04 is a Wednesday.
var wednesday = time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func baseRequest() Request {
	return Request{
		StartDate:       wednesday,
		EndDate:         wednesday,
		DailyStartMin:   9 * 60,
		DailyEndMin:     17 * 60,
		DurationMinutes: 60,
	}
}

func TestFirstFitReturnsEarliestGap(t *testing.T) {
	busy := []BusyInterval{{Start: at(wednesday, 10, 0), End: at(wednesday, 11, 0)}}

	slots, err := FindSlots(baseRequest(), busy)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(wednesday, 9, 0)) || !slots[0].End.Equal(at(wednesday, 10, 0)) {
		t.Fatalf("expected [09:00,10:00), got [%v,%v)", slots[0].Start, slots[0].End)
	}
}

func TestFullyBusyWindowFindsNothing(t *testing.T) {
	busy := []BusyInterval{{Start: at(wednesday, 9, 0), End: at(wednesday, 18, 0)}}

	if _, err := FindSlots(baseRequest(), busy); !errors.Is(err, ErrNoSlot) {
		t.Fatalf("expected ErrNoSlot, got %v", err)
	}
}

func TestOverlappingBusyIntervalsTolerated(t *testing.T) {
	busy := []BusyInterval{
		{Start: at(wednesday, 9, 0), End: at(wednesday, 12, 0)},
		{Start: at(wednesday, 10, 0), End: at(wednesday, 13, 0)},
	}

	slots, err := FindSlots(baseRequest(), busy)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if !slots[0].Start.Equal(at(wednesday, 13, 0)) {
		t.Fatalf("expected slot at 13:00, got %v", slots[0].Start)
	}
}

func TestBusyIntervalSpanningMidnightBlocksBothDays(t *testing.T) {
	thursday := wednesday.AddDate(0, 0, 1)
	// 23:00 Wednesday through 09:30 Thursday.
	busy := []BusyInterval{{Start: at(wednesday, 23, 0), End: at(thursday, 9, 30)}}

	req := baseRequest()
	req.StartDate = thursday
	req.EndDate = thursday
	slots, err := FindSlots(req, busy)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if !slots[0].Start.Equal(at(thursday, 9, 30)) {
		t.Fatalf("expected slot at 09:30, got %v", slots[0].Start)
	}
}

func TestIdealDayFiltering(t *testing.T) {
	req := baseRequest()
	req.EndDate = wednesday.AddDate(0, 0, 2)
	req.IdealDays = []time.Weekday{time.Thursday}

	slots, err := FindSlots(req, nil)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if got := slots[0].Start.Weekday(); got != time.Thursday {
		t.Fatalf("expected Thursday slot, got %v", got)
	}
	if !slots[0].Start.Equal(at(wednesday.AddDate(0, 0, 1), 9, 0)) {
		t.Fatalf("unexpected slot start %v", slots[0].Start)
	}
}

func TestWeeklyRepeatSpacesSlotsOneWeekApart(t *testing.T) {
	req := baseRequest()
	req.EndDate = wednesday.AddDate(0, 0, 13)
	req.IdealDays = []time.Weekday{time.Wednesday}
	req.Repeat = &Repeat{Unit: RepeatWeekly, Count: 2}

	slots, err := FindSlots(req, nil)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if diff := slots[i].Start.Sub(slots[i-1].Start); diff != 7*24*time.Hour {
			t.Fatalf("slots %d and %d are %v apart, want one week", i-1, i, diff)
		}
	}
}

func TestMonthlyRepeatSpacesSlotsOneCalendarMonthApart(t *testing.T) {
	req := baseRequest()
	req.EndDate = wednesday.AddDate(0, 0, 6)
	req.Repeat = &Repeat{Unit: RepeatMonthly, Count: 2}

	slots, err := FindSlots(req, nil)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if want := slots[i-1].Start.AddDate(0, 1, 0); !slots[i].Start.Equal(want) {
			t.Fatalf("slot %d starts %v, want %v", i, slots[i].Start, want)
		}
	}
}

func TestHorizonCoversNormalizedMonthEnds(t *testing.T) {
	req := baseRequest()
	req.StartDate = time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	req.EndDate = req.StartDate
	req.Repeat = &Repeat{Unit: RepeatMonthly, Count: 1}

	// Jan 31 plus one calendar month normalizes to Mar 3, so the scan can
	// reach days a naive EndDate+1 month bound would miss.
	want := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	if got := Horizon(req); !got.Equal(want) {
		t.Fatalf("expected horizon %v, got %v", want, got)
	}

	req.Repeat = nil
	want = req.EndDate.AddDate(0, 0, 1)
	if got := Horizon(req); !got.Equal(want) {
		t.Fatalf("expected horizon %v without repeat, got %v", want, got)
	}
}

func TestRepeatUnderFulfillmentFailsAtomically(t *testing.T) {
	req := baseRequest()
	req.EndDate = wednesday.AddDate(0, 0, 13)
	req.IdealDays = []time.Weekday{time.Wednesday}
	req.Repeat = &Repeat{Unit: RepeatWeekly, Count: 2}

	// The third occurrence would land two weeks out; block that whole day.
	blocked := wednesday.AddDate(0, 0, 14)
	busy := []BusyInterval{{Start: at(blocked, 0, 0), End: at(blocked, 23, 59)}}

	slots, err := FindSlots(req, busy)
	if !errors.Is(err, ErrNoSlot) {
		t.Fatalf("expected ErrNoSlot, got %v", err)
	}
	if slots != nil {
		t.Fatalf("expected no partial result, got %d slots", len(slots))
	}
}

func TestWindowValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"start equals end", func(r *Request) { r.DailyEndMin = r.DailyStartMin }, ErrInvalidWindow},
		{"start after end", func(r *Request) { r.DailyStartMin, r.DailyEndMin = r.DailyEndMin, r.DailyStartMin }, ErrInvalidWindow},
		{"negative start", func(r *Request) { r.DailyStartMin = -1 }, ErrInvalidWindow},
		{"window shorter than duration", func(r *Request) { r.DurationMinutes = 9 * 60 }, ErrImpossibleDuration},
		{"zero duration", func(r *Request) { r.DurationMinutes = 0 }, ErrImpossibleDuration},
		{"range reversed", func(r *Request) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }, ErrInvalidWindow},
		{"unknown repeat unit", func(r *Request) { r.Repeat = &Repeat{Unit: "day", Count: 1} }, ErrInvalidWindow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(&req)
			if _, err := FindSlots(req, nil); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestScanStopsAfterFirstSlotWithoutRepeat(t *testing.T) {
	req := baseRequest()
	req.EndDate = wednesday.AddDate(0, 0, 30)

	slots, err := FindSlots(req, nil)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected exactly 1 slot, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(wednesday, 9, 0)) {
		t.Fatalf("expected first day's slot, got %v", slots[0].Start)
	}
}
