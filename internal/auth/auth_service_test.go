package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, errors.New("not found")
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository                 { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) GetRole(ctx context.Context, id string) (string, error) { return "", nil }
func (f *fakeEmployeeRepo) ManagementEmails(ctx context.Context) ([]string, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) AdjustAvailableLeaves(ctx context.Context, id string, delta int) error {
	return nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error        { return nil }

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	password := "password123"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	userID := uuid.New()
	employeeID := uuid.New()
	user := &auth.User{
		ID:         userID,
		EmployeeID: &employeeID,
		Email:      "hr@example.com",
		Name:       "HR One",
		Password:   string(hashed),
		Role:       employee.RoleHR,
	}

	t.Run("success issues tokens with identity claims", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, user.Email, email)
				return user, nil
			},
		}
		service := auth.NewService(repo, &fakeEmployeeRepo{})

		accessToken, refreshToken, resp, err := service.Login(ctx, user.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, employee.RoleHR, resp.Role)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)

		parsed, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, userID.String(), claims["user_id"])
		assert.Equal(t, employeeID.String(), claims["employee_id"])
		assert.Equal(t, employee.RoleHR, claims["role"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}
		service := auth.NewService(repo, &fakeEmployeeRepo{})

		_, _, _, err := service.Login(ctx, user.Email, "wrongpass")
		assert.ErrorContains(t, err, "invalid email or password")
	})

	t.Run("negative unknown email", func(t *testing.T) {
		service := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeRepo{})

		_, _, _, err := service.Login(ctx, "nobody@example.com", password)
		assert.ErrorContains(t, err, "invalid email or password")
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	password := "password123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID := uuid.New()
	employeeID := uuid.New()
	user := &auth.User{
		ID:         userID,
		EmployeeID: &employeeID,
		Email:      "dev@example.com",
		Password:   string(hashed),
		Role:       employee.RoleEmployee,
	}

	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, userID, id)
			return user, nil
		},
	}
	service := auth.NewService(repo, &fakeEmployeeRepo{})

	t.Run("success rotates both tokens", func(t *testing.T) {
		_, refreshToken, _, err := service.Login(ctx, user.Email, password)
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := service.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, "not.a.token")
		assert.ErrorContains(t, err, "invalid refresh token")
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success copies role from employee record", func(t *testing.T) {
		var created *auth.User
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				created = user
				return nil
			},
		}
		employees := &fakeEmployeeRepo{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				assert.Equal(t, employeeID.String(), id)
				return &employee.Employee{ID: employeeID, Role: employee.RoleManager}, nil
			},
		}
		service := auth.NewService(repo, employees)

		resp, err := service.Register(ctx, auth.RegisterRequest{
			EmployeeID: employeeID.String(),
			Email:      "manager@example.com",
			Name:       "Manager One",
			Password:   "password123",
		})

		assert.NoError(t, err)
		assert.Equal(t, employee.RoleManager, resp.Role)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
		assert.NotEqual(t, "password123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		service := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeRepo{})

		_, err := service.Register(ctx, auth.RegisterRequest{
			EmployeeID: uuid.New().String(),
			Email:      "ghost@example.com",
			Name:       "Ghost",
			Password:   "password123",
		})
		assert.ErrorContains(t, err, "employee not found")
	})

	t.Run("negative malformed employee id", func(t *testing.T) {
		service := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeRepo{})

		_, err := service.Register(ctx, auth.RegisterRequest{
			EmployeeID: "nope",
			Email:      "x@example.com",
			Name:       "X",
			Password:   "password123",
		})
		assert.ErrorContains(t, err, "invalid employee id")
	})
}
