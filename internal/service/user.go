package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/repository"
)

var (
	ErrUserNotFound   = repository.ErrUserNotFound
	ErrUserCodeExists = repository.ErrUserCodeExists
	ErrInvalidRole    = errors.New("invalid role")
	ErrUplineRequired = errors.New("upline is required for non-admin users")
)

// defaultPassword is assigned to provisioned users until they change it.
const defaultPassword = "password"

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByCode(ctx context.Context, code string) (domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	FindByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error)
	FindAdmin(ctx context.Context) (domain.User, error)
	FindDownline(ctx context.Context, uplineID uint) ([]domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetUserByCode(ctx context.Context, code string) (domain.User, error) {
	user, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	users, err := s.repo.FindByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRole -> %w", err)
	}

	return users, nil
}

// GetUpline resolves a user's direct upline, or nil for the hierarchy root.
func (s *UserService) GetUpline(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.UplineID == nil {
		return nil, nil
	}

	upline, err := s.repo.FindByID(ctx, *user.UplineID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return &upline, nil
}

func (s *UserService) GetDownline(ctx context.Context, userID uint) ([]domain.User, error) {
	downline, err := s.repo.FindDownline(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindDownline -> %w", err)
	}

	return downline, nil
}

// BuildTree builds the full subtree rooted at the user with the given public
// code. Every user is loaded once, indexed by internal id, and attached to
// its upline's node, so the whole tree costs a single scan plus map lookups.
func (s *UserService) BuildTree(ctx context.Context, rootCode string) (*domain.TreeNode, error) {
	root, err := s.repo.FindByCode(ctx, rootCode)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	nodes := make(map[uint]*domain.TreeNode, len(users))
	for _, u := range users {
		nodes[u.ID] = &domain.TreeNode{
			ID:       u.ID,
			Code:     u.Code,
			Name:     u.Name,
			Role:     u.Role,
			Children: []*domain.TreeNode{},
		}
	}

	for _, u := range users {
		if u.UplineID == nil {
			continue
		}
		if parent, ok := nodes[*u.UplineID]; ok {
			parent.Children = append(parent.Children, nodes[u.ID])
		}
	}

	return nodes[root.ID], nil
}

// CreateUser provisions a user under an upline. Non-admin users must have an
// upline; the public code defaults to a role prefix plus four random digits.
func (s *UserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if !user.Role.Valid() {
		return domain.User{}, ErrInvalidRole
	}

	if user.Role != domain.RoleAdmin {
		if user.UplineID == nil {
			return domain.User{}, ErrUplineRequired
		}
		if _, err := s.repo.FindByID(ctx, *user.UplineID); err != nil {
			return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
	}

	if user.Code == "" {
		user.Code = fmt.Sprintf("%s%d", user.Role.CodePrefix(), 1000+rand.Intn(9000))
	}

	password := user.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
