package leave

// Snapshot captures the persisted state of an application before a mutation.
// The zero value (Exists == false) represents "no previous state", i.e. a
// fresh submission.
type Snapshot struct {
	Exists       bool
	LeaveType    string
	Status       string
	NumberOfDays int
}

func SnapshotOf(l *LeaveApplication) Snapshot {
	return Snapshot{
		Exists:       true,
		LeaveType:    l.LeaveType,
		Status:       l.Status,
		NumberOfDays: l.NumberOfDays,
	}
}

func charged(leaveType, status string) bool {
	return leaveType == TypeLeave && (status == StatusPending || status == StatusApproved)
}

// BalanceDelta is the single charging rule: given the previous persisted
// state and the next state of the same application, it returns the signed
// day adjustment to apply to the employee's available-leave balance.
//
// Consultants never accrue or consume a balance, so their delta is always 0.
//
// Invariant preserved: available_leaves == allocation - sum(NumberOfDays of
// LEAVE applications currently Pending or Approved).
func BalanceDelta(prev Snapshot, next *LeaveApplication, consultant bool) int {
	if consultant {
		return 0
	}

	was := prev.Exists && charged(prev.LeaveType, prev.Status)
	is := charged(next.LeaveType, next.Status)

	switch {
	case is && !was:
		return -next.NumberOfDays
	case was && !is:
		return prev.NumberOfDays
	case is && was:
		return prev.NumberOfDays - next.NumberOfDays
	default:
		return 0
	}
}

// JoinRejectReason appends a new rejection reason to the accumulated
// semicolon-separated history, tolerating empty strings on either side.
func JoinRejectReason(existing, next string) string {
	if next == "" {
		return existing
	}
	if existing == "" {
		return next
	}
	return existing + ";" + next
}
