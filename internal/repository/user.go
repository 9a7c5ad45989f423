package repository

import (
	"context"
	"fmt"

	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/repository/dao"
)

var (
	ErrUserCodeExists = dao.ErrUserCodeExists
	ErrUserNotFound   = dao.ErrUserNotFound
	ErrAdminNotFound  = dao.ErrAdminNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByCode(ctx context.Context, code string) (dao.User, error)
	FindByRole(ctx context.Context, role string) ([]dao.User, error)
	FindByRoles(ctx context.Context, roles []string) ([]dao.User, error)
	FindAdmin(ctx context.Context) (dao.User, error)
	FindByUplineID(ctx context.Context, uplineID uint) ([]dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Code:      u.Code,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		Password:  u.Password,
		UplineID:  u.UplineID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, len(users))
	for i, u := range users {
		result[i] = r.daoToDomain(u)
	}
	return result
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Code:     user.Code,
		Name:     user.Name,
		Role:     string(user.Role),
		Password: user.Password,
		UplineID: user.UplineID,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByCode(ctx context.Context, code string) (domain.User, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	found, err := r.dao.FindByRole(ctx, string(role))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRole -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) FindByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	found, err := r.dao.FindByRoles(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRoles -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) FindAdmin(ctx context.Context) (domain.User, error) {
	found, err := r.dao.FindAdmin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindAdmin -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindDownline(ctx context.Context, uplineID uint) ([]domain.User, error) {
	found, err := r.dao.FindByUplineID(ctx, uplineID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUplineID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}
