package rbac

import (
	"context"
	"sync"

	"go-hrdesk/internal/shared/roles"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type EnforceRequest struct {
	EmployeeID string
	Role       string
	Resource   string
	Action     string
}

// RoleSource resolves an employee's role, normally backed by the employee
// repository.
type RoleSource interface {
	GetRole(ctx context.Context, id string) (string, error)
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	IsConsultant(ctx context.Context, employeeID string) (bool, error)
	CanApprove(ctx context.Context, employeeID string) (bool, error)
}

type service struct {
	roles    RoleSource
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(roles RoleSource, enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	s := &service{roles: roles, enforcer: enforcer, logger: l}
	if err := s.seedPolicies(); err != nil {
		return nil, err
	}
	return s, nil
}

// seedPolicies loads the static role matrix. Roles are organization-wide,
// not per tenant, so the policy set is fixed at startup.
func (s *service) seedPolicies() error {
	s.enforcer.ClearPolicy()

	policies := [][]string{
		{roles.RoleAdmin, "leaves", "read"},
		{roles.RoleAdmin, "leaves", "write"},
		{roles.RoleAdmin, "leaves", "process"},
		{roles.RoleAdmin, "employees", "read"},
		{roles.RoleAdmin, "employees", "write"},
		{roles.RoleHR, "leaves", "read"},
		{roles.RoleHR, "leaves", "write"},
		{roles.RoleHR, "leaves", "process"},
		{roles.RoleHR, "employees", "read"},
		{roles.RoleHR, "employees", "write"},
		{roles.RoleManager, "leaves", "read"},
		{roles.RoleManager, "leaves", "write"},
		{roles.RoleManager, "leaves", "process"},
		{roles.RoleManager, "employees", "read"},
		{roles.RoleFinance, "leaves", "read"},
		{roles.RoleFinance, "leaves", "write"},
		{roles.RoleFinance, "leaves", "process"},
		{roles.RoleFinance, "employees", "read"},
		{roles.RoleEmployee, "leaves", "read"},
		{roles.RoleEmployee, "leaves", "write"},
		{roles.RoleIntern, "leaves", "read"},
		{roles.RoleIntern, "leaves", "write"},
		{roles.RoleConsultant, "leaves", "read"},
		{roles.RoleConsultant, "leaves", "write"},
	}

	for _, p := range policies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) IsConsultant(ctx context.Context, employeeID string) (bool, error) {
	role, err := s.roles.GetRole(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return role == roles.RoleConsultant, nil
}

func (s *service) CanApprove(ctx context.Context, employeeID string) (bool, error) {
	role, err := s.roles.GetRole(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return roles.IsManagementRole(role), nil
}
