package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "go-hrdesk/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const OptionsCacheKey = "employees:options"

// FutureLeaveRejector lets deactivation reject an employee's pending future
// requests without importing the leave package.
type FutureLeaveRejector interface {
	RejectFutureLeaves(ctx context.Context, employeeID, reason string) error
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Balance(ctx context.Context, id string) (BalanceResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	rejector FutureLeaveRejector
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	rejector FutureLeaveRejector,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		rejector: rejector,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if !isKnownRole(req.Role) {
		s.logger.Warn("create employee unknown role", zap.String("role", req.Role))
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := &Employee{
		ID:              uuid.New(),
		FullName:        req.FullName,
		Email:           req.Email,
		Role:            req.Role,
		ContactNumber:   req.ContactNumber,
		AvailableLeaves: req.AvailableLeaves,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create employee success", zap.String("employee_id", empl.ID.String()))

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

func (s *service) Balance(ctx context.Context, id string) (BalanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BalanceResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		EmployeeID:      empl.ID.String(),
		AvailableLeaves: empl.AvailableLeaves,
	}, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	if !isKnownRole(req.Role) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Role = req.Role
	empl.ContactNumber = req.ContactNumber

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Deactivate soft-deletes the employee and rejects their future pending
// requests so no orphaned applications keep the balance charged.
func (s *service) Deactivate(ctx context.Context, id string) error {
	s.logger.Debug("deactivate employee requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	if s.rejector != nil {
		if err := s.rejector.RejectFutureLeaves(ctx, id, "User Resigned"); err != nil {
			s.logger.Error("deactivate employee reject future leaves failed",
				zap.String("employee_id", id),
				zap.Error(err),
			)
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Deactivate(ctx, id); err != nil {
		s.logger.Error("deactivate employee failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("deactivate employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func isKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleManager, RoleFinance, RoleEmployee, RoleIntern, RoleConsultant:
		return true
	}
	return false
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              empl.ID.String(),
		FullName:        empl.FullName,
		Email:           empl.Email,
		Role:            empl.Role,
		ContactNumber:   empl.ContactNumber,
		AvailableLeaves: empl.AvailableLeaves,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
