package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrdesk/internal/employee"
	employeeerrors "go-hrdesk/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeEmployeeService struct {
	createFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn     func(ctx context.Context) ([]employee.EmployeeResponse, error)
	getOptionsFn func(ctx context.Context) ([]employee.EmployeeResponse, error)
	getByIDFn    func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	balanceFn    func(ctx context.Context, id string) (employee.BalanceResponse, error)
	updateFn     func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	deactivateFn func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.getOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Balance(ctx context.Context, id string) (employee.BalanceResponse, error) {
	return f.balanceFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Deactivate(ctx context.Context, id string) error {
	return f.deactivateFn(ctx, id)
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Dev One", req.FullName)
				assert.Equal(t, 18, req.AvailableLeaves)
				return employee.EmployeeResponse{
					ID:              uuid.New().String(),
					FullName:        req.FullName,
					Email:           req.Email,
					Role:            req.Role,
					AvailableLeaves: req.AvailableLeaves,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"full_name":"Dev One","email":"dev.one@example.com","role":"Employee","available_leaves":18}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got employee.EmployeeResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, "Dev One", got.FullName)
		assert.Equal(t, 18, got.AvailableLeaves)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	all := []employee.EmployeeResponse{
		{ID: "3", FullName: "Charlie", Email: "charlie@example.com"},
		{ID: "1", FullName: "alice", Email: "alice@example.com"},
		{ID: "2", FullName: "Bob", Email: "bob@example.com"},
	}

	t.Run("success filters and sorts by name", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return all, nil
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees?sort_by=name&sort_dir=asc", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []employee.EmployeeResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, "alice", got[0].FullName)
		assert.Equal(t, "Bob", got[1].FullName)
		assert.Equal(t, "Charlie", got[2].FullName)
	})

	t.Run("q filter matches name or email", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return all, nil
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees?q=bob", nil)

		h.GetAll(c)

		env := decodeEnvelope(t, w.Body.Bytes())
		var got []employee.EmployeeResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Bob", got[0].FullName)
	})

	t.Run("pagination slices the result", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return all, nil
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees?page=2&page_size=2", nil)

		h.GetAll(c)

		env := decodeEnvelope(t, w.Body.Bytes())
		var got []employee.EmployeeResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return nil, errors.New("db error")
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees", nil)

		h.GetAll(c)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.Equal(t, "Internal server error", env.Error.Message)
	})
}

func TestEmployeeHandler_Balance(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeEmployeeService{
			balanceFn: func(ctx context.Context, got string) (employee.BalanceResponse, error) {
				assert.Equal(t, id, got)
				return employee.BalanceResponse{EmployeeID: got, AvailableLeaves: 12}, nil
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees/"+id+"/balance", nil)
		c.Params = []gin.Param{{Key: "id", Value: id}}

		h.Balance(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got employee.BalanceResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, 12, got.AvailableLeaves)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			balanceFn: func(ctx context.Context, id string) (employee.BalanceResponse, error) {
				return employee.BalanceResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employees/x/balance", nil)
		c.Params = []gin.Param{{Key: "id", Value: "x"}}

		h.Balance(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestEmployeeHandler_Deactivate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		var called string
		svc := &fakeEmployeeService{
			deactivateFn: func(ctx context.Context, got string) error {
				called = got
				return nil
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/employees/"+id, nil)
		c.Params = []gin.Param{{Key: "id", Value: id}}

		h.Deactivate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, called)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc := &fakeEmployeeService{
			deactivateFn: func(ctx context.Context, id string) error {
				return employeeerrors.ErrInvalidEmployeeID
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/employees/nope", nil)
		c.Params = []gin.Param{{Key: "id", Value: "nope"}}

		h.Deactivate(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}
