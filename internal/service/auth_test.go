package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrolink/distribution-api/internal/domain"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := newFakeUserRepo(domain.User{
		ID:       5,
		Code:     "DEA5001",
		Role:     domain.RoleDealer,
		Password: string(hash),
	})
	svc := NewAuthService(users)

	user, err := svc.Login(context.Background(), "DEA5001", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID)

	// Codes match regardless of case.
	user, err = svc.Login(context.Background(), "dea5001", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := newFakeUserRepo(domain.User{ID: 5, Code: "DEA5001", Password: string(hash)})
	svc := NewAuthService(users)

	_, err = svc.Login(context.Background(), "DEA5001", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownCode(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "DEA0000", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
