package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/expensetracker/expense-service/internal/core/domain"
	"github.com/expensetracker/expense-service/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, name, password string) (string, error)
	logoutFn func(ctx context.Context, claims *domain.TokenClaims) error
}

func (s *stubAuthService) Login(ctx context.Context, name, password string) (string, error) {
	return s.loginFn(ctx, name, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.TokenClaims, error) {
	return nil, errors.New("not used by handlers")
}

func (s *stubAuthService) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	return s.logoutFn(ctx, claims)
}

type stubUserService struct {
	createFn       func(ctx context.Context, name, password string) (*domain.User, error)
	getFn          func(ctx context.Context, id int64) (*domain.User, error)
	getByNameFn    func(ctx context.Context, name string) (*domain.User, error)
	listFn         func(ctx context.Context) ([]*domain.User, error)
	updateFn       func(ctx context.Context, id int64, name, password string) (*domain.User, error)
	deleteFn       func(ctx context.Context, id int64) error
	listExpensesFn func(ctx context.Context, id int64, page domain.Page) ([]*domain.Expense, error)
}

func (s *stubUserService) Create(ctx context.Context, name, password string) (*domain.User, error) {
	return s.createFn(ctx, name, password)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) GetByName(ctx context.Context, name string) (*domain.User, error) {
	return s.getByNameFn(ctx, name)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, id int64, name, password string) (*domain.User, error) {
	return s.updateFn(ctx, id, name, password)
}

func (s *stubUserService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) ListExpenses(ctx context.Context, id int64, page domain.Page) ([]*domain.Expense, error) {
	return s.listExpensesFn(ctx, id, page)
}

type stubExpenseService struct {
	createFn func(ctx context.Context, in ports.ExpenseInput) (*domain.Expense, error)
	getFn    func(ctx context.Context, id int64) (*domain.Expense, error)
	listFn   func(ctx context.Context, page domain.Page) ([]*domain.Expense, error)
	updateFn func(ctx context.Context, id int64, in ports.ExpenseInput) (*domain.Expense, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubExpenseService) Create(ctx context.Context, in ports.ExpenseInput) (*domain.Expense, error) {
	return s.createFn(ctx, in)
}

func (s *stubExpenseService) Get(ctx context.Context, id int64) (*domain.Expense, error) {
	return s.getFn(ctx, id)
}

func (s *stubExpenseService) List(ctx context.Context, page domain.Page) ([]*domain.Expense, error) {
	return s.listFn(ctx, page)
}

func (s *stubExpenseService) Update(ctx context.Context, id int64, in ports.ExpenseInput) (*domain.Expense, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubExpenseService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

// newContext builds an echo context for a JSON request. pathValues are
// name/value pairs for path parameters.
func newContext(method, target, body string, pathValues ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(pathValues); i += 2 {
		names = append(names, pathValues[i])
		values = append(values, pathValues[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError with %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}
