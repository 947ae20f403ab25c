package schedule

import "time"

// dayOccupancy marks each minute of the given day as free or blocked.
// Minutes outside [startMin, endMin] are blocked up front; every busy
// interval overlapping the day is then clipped to the day's bounds and
// cleared. An interval spanning midnight blocks the tail of one day and the
// head of the next, never more than it actually covers.
//
// The window bounds have already been validated by the caller.
func dayOccupancy(day time.Time, startMin, endMin int, busy []BusyInterval) []bool {
	free := make([]bool, minutesPerDay)
	for m := startMin; m <= endMin && m < minutesPerDay; m++ {
		free[m] = true
	}

	dayStart := midnight(day)
	dayEnd := dayStart.Add(24 * time.Hour)

	for _, b := range busy {
		if !b.End.After(dayStart) || !b.Start.Before(dayEnd) {
			continue
		}
		s, e := b.Start, b.End
		if s.Before(dayStart) {
			s = dayStart
		}
		if e.After(dayEnd) {
			e = dayEnd
		}

		startIdx := s.Hour()*60 + s.Minute()
		endIdx := e.Hour()*60 + e.Minute()
		if endIdx == 0 && e.Equal(dayEnd) {
			endIdx = minutesPerDay
		}
		for m := startIdx; m < endIdx && m < minutesPerDay; m++ {
			free[m] = false
		}
	}

	return free
}
