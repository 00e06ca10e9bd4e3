package events

import "time"

const LeaveStatusChangedTopic = "hr.leave.status.v1"

type LeaveStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	LeaveID      string    `json:"leave_id"`
	EmployeeID   string    `json:"employee_id"`
	LeaveType    string    `json:"leave_type"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	RejectReason string    `json:"reject_reason,omitempty"`
	Recipients   []string  `json:"recipients,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
