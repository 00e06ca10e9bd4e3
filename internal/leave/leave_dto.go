package leave

type SubmitLeaveRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	LeaveType     string `json:"leave_type" binding:"required,oneof=LEAVE WFH 'OPTIONAL HOLIDAY' SPL UNPAID"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	NumberOfDays  int    `json:"number_of_days"`
	Reason        string `json:"reason" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required,numeric"`
}

type AmendLeaveRequest struct {
	LeaveType     string `json:"leave_type" binding:"required,oneof=LEAVE WFH 'OPTIONAL HOLIDAY' SPL UNPAID"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	NumberOfDays  int    `json:"number_of_days"`
	Reason        string `json:"reason" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required,numeric"`
}

type TransitionLeaveRequest struct {
	RejectReason string `json:"reject_reason"`
}

// Message mirrors the flash-style result of a processed transition.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	NumberOfDays  int     `json:"number_of_days"`
	Reason        string  `json:"reason"`
	ContactNumber string  `json:"contact_number"`
	Status        string  `json:"status"`
	RejectReason  string  `json:"reject_reason,omitempty"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
}
