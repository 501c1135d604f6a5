package overtime

import (
	"time"

	"github.com/google/uuid"
)

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ApprovedMinutes reduces a request list to the total approved minutes
// for one employee within the inclusive cutoff window. Comparison is
// date-only; time-of-day on either side is ignored. Pure: the slice is
// never mutated and no storage is touched.
func ApprovedMinutes(requests []Request, employeeID uuid.UUID, cutoffStart, cutoffEnd time.Time) int {
	start := dateOnly(cutoffStart)
	end := dateOnly(cutoffEnd)

	total := 0
	for _, req := range requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != StatusApproved {
			continue
		}
		d := dateOnly(req.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		if req.RequestedMinutes > 0 {
			total += req.RequestedMinutes
		}
	}
	return total
}
