package schedule

import (
	"fmt"
	"time"
)

// FindSlots scans the request's date range for free slots. Without a repeat
// rule it returns the first slot found and stops. With a repeat rule it must
// find Count+1 slots; after each hit both the cursor and the range end jump
// forward by one repeat unit, so every occurrence is searched for starting
// one period after the previous slot's day rather than on fixed dates.
//
// The result is all-or-nothing: fewer slots than requested is ErrNoSlot and
// no partial list is returned.
func FindSlots(req Request, busy []BusyInterval) ([]Slot, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	wanted := 1
	if req.Repeat != nil {
		wanted = req.Repeat.Count + 1
	}

	cursor := midnight(req.StartDate)
	end := midnight(req.EndDate)

	slots := make([]Slot, 0, wanted)
	days := 0
	for !cursor.After(end) && days < maxScanDays {
		days++
		if !idealDay(req.IdealDays, cursor.Weekday()) {
			cursor = cursor.AddDate(0, 0, 1)
			continue
		}

		free := dayOccupancy(cursor, req.DailyStartMin, req.DailyEndMin, busy)
		slot, ok := firstFit(cursor, free, req.DurationMinutes)
		if !ok {
			cursor = cursor.AddDate(0, 0, 1)
			continue
		}

		slots = append(slots, slot)
		if len(slots) == wanted {
			break
		}
		cursor = addUnit(cursor, req.Repeat.Unit)
		end = addUnit(end, req.Repeat.Unit)
	}

	if len(slots) != wanted {
		return nil, ErrNoSlot
	}
	return slots, nil
}

// Horizon reports the exclusive upper bound of time FindSlots can examine
// for req. Every found occurrence pushes the range end one repeat unit
// forward, and month arithmetic normalizes month-end dates (Jan 31 plus one
// month is Mar 3), so the bound is taken with the same repeated jumps the
// scan makes rather than a single AddDate call. Callers loading busy events
// must cover at least [StartDate, Horizon).
func Horizon(req Request) time.Time {
	end := midnight(req.EndDate)
	if req.Repeat != nil {
		for i := 0; i < req.Repeat.Count; i++ {
			end = addUnit(end, req.Repeat.Unit)
		}
	}
	return end.AddDate(0, 0, 1)
}

func validate(req Request) error {
	if req.DailyStartMin < 0 || req.DailyEndMin > minutesPerDay || req.DailyStartMin >= req.DailyEndMin {
		return ErrInvalidWindow
	}
	if req.DurationMinutes <= 0 || req.DailyEndMin-req.DailyStartMin < req.DurationMinutes {
		return ErrImpossibleDuration
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidWindow)
	}
	if req.Repeat != nil {
		if req.Repeat.Count < 0 {
			return fmt.Errorf("%w: negative repeat count", ErrInvalidWindow)
		}
		if req.Repeat.Unit != RepeatWeekly && req.Repeat.Unit != RepeatMonthly {
			return fmt.Errorf("%w: unknown repeat unit %q", ErrInvalidWindow, req.Repeat.Unit)
		}
	}
	return nil
}

func idealDay(days []time.Weekday, d time.Weekday) bool {
	if len(days) == 0 {
		return true
	}
	for _, want := range days {
		if want == d {
			return true
		}
	}
	return false
}

func addUnit(t time.Time, unit RepeatUnit) time.Time {
	if unit == RepeatMonthly {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 7)
}
