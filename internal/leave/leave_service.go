package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-hrdesk/internal/employee"
	"go-hrdesk/internal/events"
	leaveerrors "go-hrdesk/internal/leave/errors"
	"go-hrdesk/internal/rbac"
	"go-hrdesk/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationSink receives status-change events after the owning
// transaction commits. Delivery is best effort: a sink failure never rolls
// back a balance mutation.
type NotificationSink interface {
	NotifyStatusChange(ctx context.Context, event events.LeaveStatusChangedEvent) error
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req SubmitLeaveRequest) (LeaveResponse, error)
	Amend(ctx context.Context, actorID, id string, req AmendLeaveRequest) (LeaveResponse, error)
	ProcessTransition(ctx context.Context, id, targetStatus, actorID, rejectReason string) (Message, error)
	GetAll(ctx context.Context, limit, offset int) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	PastLeaves(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	UpcomingLeaves(ctx context.Context, employeeID string, excludeID *string) ([]LeaveResponse, error)
	RejectFutureLeaves(ctx context.Context, employeeID, reason string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	roles     rbac.Service
	clk       clock.Clock
	sink      NotificationSink
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	roles rbac.Service,
	clk clock.Clock,
	sink NotificationSink,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		roles:     roles,
		clk:       clk,
		sink:      sink,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, actorID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qemp := s.employees.WithTx(tx)

	empl, err := qemp.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
		}
		s.logger.Error("submit leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveApplication{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		LeaveType:     req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		NumberOfDays:  req.NumberOfDays,
		Reason:        req.Reason,
		ContactNumber: req.ContactNumber,
		Status:        StatusPending,
	}
	if l.NumberOfDays == 0 {
		l.NumberOfDays = spanDays(startDate, endDate)
	}

	others, err := qtx.FindActiveByEmployee(ctx, req.EmployeeID, nil)
	if err != nil {
		s.logger.Error("submit leave conflict fetch failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := Validate(l, others, s.clk.Today()); err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	consultant := empl.Role == employee.RoleConsultant
	if err := s.applyBalanceChange(ctx, qtx, qemp, l, Snapshot{}, consultant); err != nil {
		s.logger.Error("submit leave balance charge failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	s.notify(ctx, l, "", StatusPending, empl.Email)

	return mapToResponse(*l), nil
}

func (s *service) Amend(ctx context.Context, actorID, id string, req AmendLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("amend leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("amend leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qemp := s.employees.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	// Owners may edit their own pending request; anything beyond that
	// (someone else's request, or a request already processed) needs a
	// management role.
	isOwner := l.EmployeeID.String() == actorID
	if !isOwner || l.Status != StatusPending {
		canApprove, err := s.roles.CanApprove(ctx, actorID)
		if err != nil {
			s.logger.Error("amend leave role check failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if !canApprove {
			if !isOwner {
				return LeaveResponse{}, leaveerrors.ErrNotAuthorized
			}
			return LeaveResponse{}, leaveerrors.ErrPendingOnlyEdit
		}
	}

	empl, err := qemp.FindByID(ctx, l.EmployeeID.String())
	if err != nil {
		s.logger.Error("amend leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	prev := SnapshotOf(l)

	l.LeaveType = req.LeaveType
	l.StartDate = startDate
	l.EndDate = endDate
	l.NumberOfDays = req.NumberOfDays
	l.Reason = req.Reason
	l.ContactNumber = req.ContactNumber
	if l.NumberOfDays == 0 {
		l.NumberOfDays = spanDays(startDate, endDate)
	}

	excludeID := l.ID.String()
	others, err := qtx.FindActiveByEmployee(ctx, l.EmployeeID.String(), &excludeID)
	if err != nil {
		s.logger.Error("amend leave conflict fetch failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := Validate(l, others, s.clk.Today()); err != nil {
		s.logger.Warn("amend leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("amend leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	consultant := empl.Role == employee.RoleConsultant
	if err := s.applyBalanceChange(ctx, qtx, qemp, l, prev, consultant); err != nil {
		s.logger.Error("amend leave balance adjust failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("amend leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("amend leave success", zap.String("leave_id", id))

	s.notify(ctx, l, l.Status, l.Status, empl.Email)

	return mapToResponse(*l), nil
}

// ProcessTransition moves a leave application to Approved or Rejected,
// charging or crediting the balance according to the state change. An
// OPTIONAL HOLIDAY entering or leaving Approved also shortens or restores
// any LEAVE application of the same employee spanning its start date.
func (s *service) ProcessTransition(ctx context.Context, id, targetStatus, actorID, rejectReason string) (Message, error) {
	s.logger.Debug("process leave transition requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if targetStatus != StatusApproved && targetStatus != StatusRejected {
		return Message{}, leaveerrors.ErrInvalidTargetStatus
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return Message{}, leaveerrors.ErrInvalidActorID
	}

	canApprove, err := s.roles.CanApprove(ctx, actorID)
	if err != nil {
		s.logger.Error("process leave transition role check failed", zap.Error(err))
		return Message{}, err
	}
	if !canApprove {
		s.logger.Warn("process leave transition actor not allowed",
			zap.String("leave_id", id),
			zap.String("actor_id", actorID),
		)
		return Message{}, leaveerrors.ErrNotAuthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("process leave transition begin tx failed", zap.Error(err))
		return Message{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qemp := s.employees.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Message{}, leaveerrors.ErrLeaveNotFound
		}
		return Message{}, err
	}
	if l.Status == targetStatus {
		s.logger.Warn("process leave transition no-op",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return Message{}, leaveerrors.NoOpTransition(l.LeaveType, l.Status)
	}

	empl, err := qemp.FindByID(ctx, l.EmployeeID.String())
	if err != nil {
		s.logger.Error("process leave transition employee lookup failed", zap.Error(err))
		return Message{}, err
	}
	consultant := empl.Role == employee.RoleConsultant

	prev := SnapshotOf(l)
	oldStatus := l.Status

	l.Status = targetStatus
	switch targetStatus {
	case StatusApproved:
		l.ApprovedBy = &actorUUID
	case StatusRejected:
		l.RejectReason = JoinRejectReason(l.RejectReason, rejectReason)
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("process leave transition persist failed", zap.Error(err))
		return Message{}, err
	}
	if err := s.applyBalanceChange(ctx, qtx, qemp, l, prev, consultant); err != nil {
		s.logger.Error("process leave transition balance adjust failed", zap.Error(err))
		return Message{}, err
	}

	if l.LeaveType == TypeOptionalHoliday {
		if err := s.applyOptionalHolidayOffset(ctx, qtx, qemp, l, oldStatus, targetStatus, consultant); err != nil {
			s.logger.Error("process leave transition optional holiday offset failed", zap.Error(err))
			return Message{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("process leave transition commit failed", zap.Error(err))
		return Message{}, err
	}

	s.logger.Info("process leave transition success",
		zap.String("leave_id", id),
		zap.String("from_status", oldStatus),
		zap.String("to_status", targetStatus),
	)

	s.notify(ctx, l, oldStatus, targetStatus, empl.Email)

	return Message{Type: "notice", Text: fmt.Sprintf("%s Successfully", targetStatus)}, nil
}

// applyOptionalHolidayOffset shortens each LEAVE application spanning the
// approved optional holiday's start date by one day, regardless of that
// application's status; the balance moves only through the ordinary charging
// rule. Leaving Approved restores the day.
func (s *service) applyOptionalHolidayOffset(
	ctx context.Context,
	qtx Repository,
	qemp employee.Repository,
	holiday *LeaveApplication,
	oldStatus, newStatus string,
	consultant bool,
) error {
	var shift int
	switch {
	case newStatus == StatusApproved && oldStatus != StatusApproved:
		shift = -1
	case oldStatus == StatusApproved && newStatus != StatusApproved:
		shift = 1
	default:
		return nil
	}

	spanning, err := qtx.FindLeaveSpanning(ctx, holiday.EmployeeID.String(), holiday.StartDate)
	if err != nil {
		return err
	}

	for i := range spanning {
		affected := &spanning[i]
		if shift < 0 && affected.NumberOfDays == 0 {
			continue
		}

		prev := SnapshotOf(affected)
		affected.NumberOfDays += shift

		if err := qtx.Update(ctx, affected); err != nil {
			return err
		}
		if err := s.applyBalanceChange(ctx, qtx, qemp, affected, prev, consultant); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, limit, offset int) ([]LeaveResponse, int64, error) {
	leaves, total, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// PastLeaves lists approved LEAVE applications from the trailing six months
// that ended before today, newest first.
func (s *service) PastLeaves(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.PastLeaves(ctx, employeeID, s.clk.Today())
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// UpcomingLeaves lists non-rejected non-WFH applications starting today or
// later, oldest first. excludeID drops the application being amended.
func (s *service) UpcomingLeaves(ctx context.Context, employeeID string, excludeID *string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.UpcomingLeaves(ctx, employeeID, s.clk.Today(), excludeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// RejectFutureLeaves rejects the employee's pending applications starting
// today or later, crediting any charged days back. Used when an employee is
// deactivated.
func (s *service) RejectFutureLeaves(ctx context.Context, employeeID, reason string) error {
	s.logger.Debug("reject future leaves requested",
		zap.String("employee_id", employeeID),
		zap.String("reason", reason),
	)

	if _, err := uuid.Parse(employeeID); err != nil {
		return leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject future leaves begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qemp := s.employees.WithTx(tx)

	empl, err := qemp.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrInvalidEmployeeID
		}
		return err
	}
	consultant := empl.Role == employee.RoleConsultant

	pending, err := qtx.FindStartingOnOrAfter(ctx, employeeID, s.clk.Today(), []string{StatusPending})
	if err != nil {
		s.logger.Error("reject future leaves fetch failed", zap.Error(err))
		return err
	}

	for i := range pending {
		l := &pending[i]
		prev := SnapshotOf(l)

		l.Status = StatusRejected
		l.RejectReason = JoinRejectReason(l.RejectReason, reason)

		if err := qtx.Update(ctx, l); err != nil {
			s.logger.Error("reject future leaves persist failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return err
		}
		if err := s.applyBalanceChange(ctx, qtx, qemp, l, prev, consultant); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject future leaves commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("reject future leaves success",
		zap.String("employee_id", employeeID),
		zap.Int("rejected", len(pending)),
	)
	return nil
}

// applyBalanceChange runs the charging rule for one application and, when
// the delta is non-zero, adjusts the employee projection and appends an
// audit entry in the same transaction.
func (s *service) applyBalanceChange(
	ctx context.Context,
	qtx Repository,
	qemp employee.Repository,
	l *LeaveApplication,
	prev Snapshot,
	consultant bool,
) error {
	delta := BalanceDelta(prev, l, consultant)
	if delta == 0 {
		return nil
	}

	if err := qemp.AdjustAvailableLeaves(ctx, l.EmployeeID.String(), delta); err != nil {
		return err
	}
	return qtx.AppendBalanceEntry(ctx, BalanceEntry{
		ID:         uuid.New(),
		EmployeeID: l.EmployeeID,
		LeaveID:    l.ID,
		Delta:      delta,
		RecordedAt: time.Now().UTC(),
	})
}

// notify enqueues one status-change event addressed to the management roles
// plus the employee. Recipient resolution and the enqueue are both best
// effort and never fail the committed operation.
func (s *service) notify(ctx context.Context, l *LeaveApplication, oldStatus, newStatus, employeeEmail string) {
	if s.sink == nil {
		return
	}

	recipients, err := s.employees.ManagementEmails(ctx)
	if err != nil {
		s.logger.Warn("management recipient lookup failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		recipients = nil
	}
	if employeeEmail != "" && !containsString(recipients, employeeEmail) {
		recipients = append(recipients, employeeEmail)
	}

	event := events.LeaveStatusChangedEvent{
		EventType:    "leave_status_changed",
		LeaveID:      l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		LeaveType:    l.LeaveType,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		RejectReason: l.RejectReason,
		Recipients:   recipients,
		OccurredAt:   time.Now().UTC(),
	}

	if err := s.sink.NotifyStatusChange(ctx, event); err != nil {
		s.logger.Warn("status change notification failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("new_status", newStatus),
			zap.Error(err),
		)
	}
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

func spanDays(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate).Hours()/24) + 1
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveApplication) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		NumberOfDays:  l.NumberOfDays,
		Reason:        l.Reason,
		ContactNumber: l.ContactNumber,
		Status:        l.Status,
		RejectReason:  l.RejectReason,
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveApplication) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
