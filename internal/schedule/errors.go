package schedule

import "errors"

var (
	// ErrInvalidWindow means the daily window bounds are malformed.
	ErrInvalidWindow = errors.New("schedule: daily window start must be before end")
	// ErrImpossibleDuration means the daily window is shorter than the
	// requested duration, so no day could ever satisfy the request.
	ErrImpossibleDuration = errors.New("schedule: daily window shorter than requested duration")
	// ErrNoSlot means the scan exhausted the range without finding every
	// requested occurrence. Partial results are never returned.
	ErrNoSlot = errors.New("schedule: no slot satisfies every requested occurrence")
)
