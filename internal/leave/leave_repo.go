package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveApplication) error
	FindByID(ctx context.Context, id string) (*LeaveApplication, error)
	FindAll(ctx context.Context, limit, offset int) ([]LeaveApplication, int64, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error)
	FindActiveByEmployee(ctx context.Context, employeeID string, excludeID *string) ([]LeaveApplication, error)
	FindLeaveSpanning(ctx context.Context, employeeID string, day time.Time) ([]LeaveApplication, error)
	FindStartingOnOrAfter(ctx context.Context, employeeID string, day time.Time, statuses []string) ([]LeaveApplication, error)
	PastLeaves(ctx context.Context, employeeID string, before time.Time) ([]LeaveApplication, error)
	UpcomingLeaves(ctx context.Context, employeeID string, from time.Time, excludeID *string) ([]LeaveApplication, error)
	Update(ctx context.Context, l *LeaveApplication) error
	AppendBalanceEntry(ctx context.Context, entry BalanceEntry) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create persists a new application. Inside a transaction the insert runs on
// the tx connection so the row commits or rolls back together with the
// balance writes.
func (r *repository) Create(ctx context.Context, l *LeaveApplication) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Create(l).Error
	}

	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	query := `
        INSERT INTO leave_applications
            (id, employee_id, leave_type, start_date, end_date, number_of_days,
             reason, contact_number, status, reject_reason, approved_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.tx.ExecContext(
		ctx, query,
		l.ID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.NumberOfDays,
		l.Reason, l.ContactNumber, l.Status, l.RejectReason, l.ApprovedBy, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context, limit, offset int) ([]LeaveApplication, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&LeaveApplication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []LeaveApplication
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error) {
	var leaves []LeaveApplication
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

// FindActiveByEmployee returns the employee's non-rejected applications, used
// as input to the cross-date conflict check.
func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string, excludeID *string) ([]LeaveApplication, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var leaves []LeaveApplication
	err := db.Order("start_date ASC").Find(&leaves).Error
	return leaves, err
}

// FindLeaveSpanning returns the employee's LEAVE-type applications whose
// inclusive date range contains day, in any status.
func (r *repository) FindLeaveSpanning(ctx context.Context, employeeID string, day time.Time) ([]LeaveApplication, error) {
	var leaves []LeaveApplication
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", TypeLeave).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindStartingOnOrAfter(ctx context.Context, employeeID string, day time.Time, statuses []string) ([]LeaveApplication, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("start_date >= ?", day)

	if len(statuses) > 0 {
		db = db.Where("status IN ?", statuses)
	}

	var leaves []LeaveApplication
	err := db.Order("start_date ASC").Find(&leaves).Error
	return leaves, err
}

// pastLeavesWindowMonths bounds the past-leaves listing to the trailing
// half year.
const pastLeavesWindowMonths = 6

// PastLeaves returns the employee's approved LEAVE applications that ended
// before the given day and started within the trailing six months. WFH and
// the other non-chargeable types never appear here.
func (r *repository) PastLeaves(ctx context.Context, employeeID string, before time.Time) ([]LeaveApplication, error) {
	windowStart := before.AddDate(0, -pastLeavesWindowMonths, 0)

	var leaves []LeaveApplication
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", TypeLeave).
		Where("status = ?", StatusApproved).
		Where("start_date >= ?", windowStart).
		Where("end_date < ?", before).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

// UpcomingLeaves returns the employee's non-rejected applications starting on
// or after the given day, WFH excluded.
func (r *repository) UpcomingLeaves(ctx context.Context, employeeID string, from time.Time, excludeID *string) ([]LeaveApplication, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type <> ?", TypeWFH).
		Where("start_date >= ?", from).
		Where("status <> ?", StatusRejected)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var leaves []LeaveApplication
	err := db.Order("start_date ASC").Find(&leaves).Error
	return leaves, err
}

// Update saves an application's mutable fields, on the tx connection when one
// is attached.
func (r *repository) Update(ctx context.Context, l *LeaveApplication) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Save(l).Error
	}

	l.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE leave_applications
        SET leave_type = $2, start_date = $3, end_date = $4, number_of_days = $5,
            reason = $6, contact_number = $7, status = $8, reject_reason = $9,
            approved_by = $10, updated_at = $11
        WHERE id = $1 AND deleted_at IS NULL
    `
	_, err := r.tx.ExecContext(
		ctx, query,
		l.ID, l.LeaveType, l.StartDate, l.EndDate, l.NumberOfDays,
		l.Reason, l.ContactNumber, l.Status, l.RejectReason, l.ApprovedBy, l.UpdatedAt,
	)
	return err
}

func (r *repository) AppendBalanceEntry(ctx context.Context, entry BalanceEntry) error {
	query := `
        INSERT INTO leave_balance_entries (id, employee_id, leave_id, delta, recorded_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	if r.tx != nil {
		_, err := r.tx.ExecContext(
			ctx, query,
			entry.ID, entry.EmployeeID, entry.LeaveID, entry.Delta, entry.RecordedAt,
		)
		return err
	}
	return r.db.WithContext(ctx).
		Exec(query, entry.ID, entry.EmployeeID, entry.LeaveID, entry.Delta, entry.RecordedAt).
		Error
}
