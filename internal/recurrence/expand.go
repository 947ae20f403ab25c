// Package recurrence expands recurring calendar entries into the concrete
// intervals they occupy inside a query window.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"shared-calendar/internal/schedule"
)

// maxOccurrences caps expansion so a pathological rule cannot blow up a
// busy-interval query.
const maxOccurrences = 1000

// Expand returns the busy intervals an event contributes within [from, to).
// A non-recurring event (empty rule) contributes itself when it overlaps the
// window. A recurring event contributes every occurrence whose interval
// overlaps the window, each occurrence keeping the base event's duration.
func Expand(rule string, start, end, from, to time.Time) ([]schedule.BusyInterval, error) {
	if rule == "" {
		if start.Before(to) && end.After(from) {
			return []schedule.BusyInterval{{Start: start, End: end}}, nil
		}
		return nil, nil
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("parse recurrence rule %q: %w", rule, err)
	}
	r.DTStart(start)

	duration := end.Sub(start)
	// Widen the lower bound so an occurrence that starts before the window
	// but runs into it is still picked up.
	starts := r.Between(from.Add(-duration), to, true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	out := make([]schedule.BusyInterval, 0, len(starts))
	for _, s := range starts {
		e := s.Add(duration)
		if s.Before(to) && e.After(from) {
			out = append(out, schedule.BusyInterval{Start: s, End: e})
		}
	}
	return out, nil
}

// ValidateRule reports whether rule parses as an RFC 5545 RRULE. An empty
// rule is valid and means no recurrence.
func ValidateRule(rule string) error {
	if rule == "" {
		return nil
	}
	if _, err := rrule.StrToRRule(rule); err != nil {
		return fmt.Errorf("parse recurrence rule %q: %w", rule, err)
	}
	return nil
}
