package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeLeave           = "LEAVE"
	TypeWFH             = "WFH"
	TypeOptionalHoliday = "OPTIONAL HOLIDAY"
	TypeSPL             = "SPL"
	TypeUnpaid          = "UNPAID"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type LeaveApplication struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_applications_employee_dates"`

	LeaveType     string    `gorm:"type:varchar(30);not null;default:'LEAVE'"`
	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_applications_employee_dates"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_applications_employee_dates"`
	NumberOfDays  int       `gorm:"type:int;not null;default:1"`
	Reason        string    `gorm:"type:text;not null"`
	ContactNumber string    `gorm:"type:varchar(15);not null"`

	Status       string     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	RejectReason string     `gorm:"type:text"`
	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveApplication) TableName() string { return "leave_applications" }

// Chargeable reports whether this application debits the available-leave
// balance while in Pending or Approved status. Only plain LEAVE does.
func (l *LeaveApplication) Chargeable() bool {
	return l.LeaveType == TypeLeave
}

// IsBlocking reports whether a leave type participates in the cross-date
// conflict check. OPTIONAL HOLIDAY and UNPAID do not block other requests.
func IsBlocking(leaveType string) bool {
	switch leaveType {
	case TypeLeave, TypeWFH, TypeSPL:
		return true
	}
	return false
}

func IsValidType(leaveType string) bool {
	switch leaveType {
	case TypeLeave, TypeWFH, TypeOptionalHoliday, TypeSPL, TypeUnpaid:
		return true
	}
	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Spans reports whether day falls inside the inclusive [StartDate, EndDate]
// range.
func (l *LeaveApplication) Spans(day time.Time) bool {
	return !day.Before(l.StartDate) && !day.After(l.EndDate)
}

// Overlaps is the closed-interval intersection test used by the cross-date
// validator.
func (l *LeaveApplication) Overlaps(other *LeaveApplication) bool {
	return !l.StartDate.After(other.EndDate) && !other.StartDate.After(l.EndDate)
}

// BalanceEntry is one immutable row of the balance audit trail. Entries are
// append-only; the employees.available_leaves column is a projection of their
// sum plus the initial allocation.
type BalanceEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Delta      int       `gorm:"type:int;not null"`
	RecordedAt time.Time `gorm:"not null"`
}

func (BalanceEntry) TableName() string { return "leave_balance_entries" }
