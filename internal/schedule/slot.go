package schedule

import "time"

// firstFit scans the day's occupancy vector for the earliest contiguous run
// of free minutes at least duration long. It returns false when no run
// qualifies; absence is a valid outcome at this layer, not an error.
func firstFit(day time.Time, free []bool, duration int) (Slot, bool) {
	dayStart := midnight(day)

	runStart := -1
	for i := range free {
		if !free[i] {
			runStart = -1
			continue
		}
		if runStart < 0 {
			runStart = i
		}
		if i-runStart+1 >= duration {
			return Slot{
				Start: dayStart.Add(time.Duration(runStart) * time.Minute),
				End:   dayStart.Add(time.Duration(i+1) * time.Minute),
			}, true
		}
	}
	return Slot{}, false
}
