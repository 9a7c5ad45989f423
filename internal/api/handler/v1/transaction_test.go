package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolink/distribution-api/internal/api/middleware"
	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/service"
)

type stubUserService struct {
	user domain.User
}

func (s *stubUserService) GetUser(context.Context, uint) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetUserByCode(context.Context, string) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetUsersByRole(context.Context, domain.Role) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUserService) GetUpline(context.Context, domain.User) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) GetDownline(context.Context, uint) ([]domain.User, error) {
	return nil, nil
}

func (s *stubUserService) BuildTree(context.Context, string) (*domain.TreeNode, error) {
	return nil, nil
}

func (s *stubUserService) CreateUser(context.Context, domain.User) (domain.User, error) {
	return domain.User{}, nil
}

type stubTransactionService struct {
	err error
}

func (s *stubTransactionService) Execute(context.Context, domain.User, *uint, uint, int) (domain.Transaction, error) {
	if s.err != nil {
		return domain.Transaction{}, s.err
	}
	return domain.Transaction{ID: 1}, nil
}

func (s *stubTransactionService) GetTransactions(context.Context, uint) ([]domain.Transaction, error) {
	return nil, nil
}

func postTransaction(t *testing.T, svcErr error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	body := `{"product_id": 1, "quantity": 5}`
	req, err := http.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	require.NoError(t, err)
	ctx.Request = req
	ctx.Set(middleware.ContextKeyUserID, uint(6))

	handler := NewTransactionHandler(
		&stubTransactionService{err: svcErr},
		&stubUserService{user: domain.User{ID: 6, Role: domain.RoleFarmer}},
	)
	handler.HandleCreateTransaction(ctx)

	return w
}

func TestHandleCreateTransaction_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"success", nil, http.StatusCreated},
		{"missing buyer", service.ErrMissingBuyer, http.StatusBadRequest},
		{"no upline", service.ErrNoUpline, http.StatusBadRequest},
		{"invalid buyer role", service.ErrInvalidBuyerRole, http.StatusBadRequest},
		{"insufficient stock", service.ErrInsufficientStock, http.StatusBadRequest},
		{"unknown reference", service.ErrInvalidReference, http.StatusNotFound},
		{"lost race", service.ErrStockConflict, http.StatusConflict},
		{"no admin account", service.ErrNoAdminAccount, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postTransaction(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
