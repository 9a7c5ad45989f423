package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrolink/distribution-api/internal/domain"
)

func TestUserService_BuildTree(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 1, Code: "ADM1001", Role: domain.RoleAdmin},
		domain.User{ID: 2, Code: "FRA2001", Role: domain.RoleFranchise, UplineID: uintPtr(1)},
		domain.User{ID: 3, Code: "DIS3309", Role: domain.RoleDistributor, UplineID: uintPtr(2)},
		domain.User{ID: 4, Code: "SUB4001", Role: domain.RoleSubDistributor, UplineID: uintPtr(3)},
		domain.User{ID: 5, Code: "SUB4002", Role: domain.RoleSubDistributor, UplineID: uintPtr(3)},
	)
	svc := NewUserService(users)

	tree, err := svc.BuildTree(context.Background(), "DIS3309")
	require.NoError(t, err)
	require.NotNil(t, tree)

	assert.Equal(t, uint(3), tree.ID)
	require.Len(t, tree.Children, 2)
	codes := []string{tree.Children[0].Code, tree.Children[1].Code}
	assert.ElementsMatch(t, []string{"SUB4001", "SUB4002"}, codes)
	assert.Empty(t, tree.Children[0].Children)
}

func TestUserService_BuildTree_CaseInsensitiveRoot(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 3, Code: "DIS3309", Role: domain.RoleDistributor},
		domain.User{ID: 4, Code: "SUB4001", Role: domain.RoleSubDistributor, UplineID: uintPtr(3)},
	)
	svc := NewUserService(users)

	tree, err := svc.BuildTree(context.Background(), "dis3309")
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, "DIS3309", tree.Code)
	assert.Len(t, tree.Children, 1)
}

func TestUserService_BuildTree_UnknownRoot(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.BuildTree(context.Background(), "DIS0000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetUpline(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 1, Code: "ADM1001", Role: domain.RoleAdmin},
		domain.User{ID: 2, Code: "FRA2001", Role: domain.RoleFranchise, UplineID: uintPtr(1)},
	)
	svc := NewUserService(users)

	franchise, err := users.FindByID(context.Background(), 2)
	require.NoError(t, err)

	upline, err := svc.GetUpline(context.Background(), franchise)
	require.NoError(t, err)
	require.NotNil(t, upline)
	assert.Equal(t, uint(1), upline.ID)

	admin, err := users.FindByID(context.Background(), 1)
	require.NoError(t, err)

	upline, err = svc.GetUpline(context.Background(), admin)
	require.NoError(t, err)
	assert.Nil(t, upline)
}

func TestUserService_GetDownline(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 3, Code: "DIS3001", Role: domain.RoleDistributor},
		domain.User{ID: 4, Code: "SUB4001", Role: domain.RoleSubDistributor, UplineID: uintPtr(3)},
		domain.User{ID: 5, Code: "SUB4002", Role: domain.RoleSubDistributor, UplineID: uintPtr(3)},
		domain.User{ID: 6, Code: "DEA5001", Role: domain.RoleDealer, UplineID: uintPtr(4)},
	)
	svc := NewUserService(users)

	downline, err := svc.GetDownline(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, downline, 2)
}

func TestUserService_CreateUser(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{ID: 1, Code: "ADM1001", Role: domain.RoleAdmin},
	)
	svc := NewUserService(users)

	created, err := svc.CreateUser(context.Background(), domain.User{
		Name:     "New Dealer",
		Role:     domain.RoleDealer,
		UplineID: uintPtr(1),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.Code, "DEA"), "code %q should carry the role prefix", created.Code)
	assert.Len(t, created.Code, 7)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password")))
}

func TestUserService_CreateUser_UplineRequired(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), domain.User{
		Name: "No Upline",
		Role: domain.RoleDealer,
	})
	assert.ErrorIs(t, err, ErrUplineRequired)
}

func TestUserService_CreateUser_UnknownUpline(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), domain.User{
		Name:     "Orphan",
		Role:     domain.RoleDealer,
		UplineID: uintPtr(404),
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_CreateUser_InvalidRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), domain.User{
		Name: "Bad Role",
		Role: "Wholesaler",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserService_GetUsersByRole_InvalidRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.GetUsersByRole(context.Background(), "Wholesaler")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
