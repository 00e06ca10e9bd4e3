package leave

import (
	"regexp"
	"time"

	leaveerrors "go-hrdesk/internal/leave/errors"
)

var contactNumberPattern = regexp.MustCompile(`^[0-9]+$`)

// Validate checks a candidate application against field, date and cross-date
// rules. others must hold the same employee's other applications; the
// candidate excludes itself by ID when it is an amendment of a stored row.
func Validate(candidate *LeaveApplication, others []LeaveApplication, today time.Time) error {
	if candidate.Reason == "" {
		return leaveerrors.MissingField("reason")
	}
	if candidate.ContactNumber == "" {
		return leaveerrors.MissingField("contact_number")
	}
	if !contactNumberPattern.MatchString(candidate.ContactNumber) {
		return leaveerrors.ErrContactNumberNotNumeric
	}
	if candidate.LeaveType == "" {
		return leaveerrors.MissingField("leave_type")
	}
	if !IsValidType(candidate.LeaveType) {
		return leaveerrors.ErrInvalidLeaveType
	}
	if candidate.StartDate.IsZero() {
		return leaveerrors.MissingField("start_date")
	}
	if candidate.EndDate.IsZero() {
		return leaveerrors.MissingField("end_date")
	}
	if candidate.EndDate.Before(candidate.StartDate) {
		return leaveerrors.ErrInvalidDateRange
	}
	if candidate.StartDate.Year() > today.Year() {
		return leaveerrors.ErrFutureYear
	}
	if candidate.NumberOfDays < 0 {
		return leaveerrors.ErrNegativeDays
	}

	if conflict := findConflict(candidate, others); conflict != nil {
		return leaveerrors.OverlappingRequest(conflict.LeaveType)
	}

	return nil
}

// findConflict returns the first existing blocking request whose inclusive
// date range intersects the candidate's. Rejected requests never block, and
// non-blocking types (OPTIONAL HOLIDAY, UNPAID) neither block nor are blocked.
func findConflict(candidate *LeaveApplication, others []LeaveApplication) *LeaveApplication {
	if !IsBlocking(candidate.LeaveType) {
		return nil
	}

	for i := range others {
		existing := &others[i]
		if existing.ID == candidate.ID {
			continue
		}
		if existing.Status == StatusRejected {
			continue
		}
		if !IsBlocking(existing.LeaveType) {
			continue
		}
		if candidate.Overlaps(existing) {
			return existing
		}
	}
	return nil
}
