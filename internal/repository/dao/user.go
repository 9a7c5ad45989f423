package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserCodeExists = errors.New("user code already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrAdminNotFound  = errors.New("admin account not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Code     string `gorm:"uniqueIndex;not null"` // public code, e.g. "DIS3309"
	Name     string `gorm:"not null"`
	Role     string `gorm:"not null;index"`
	Password string `gorm:"not null"`

	UplineID *uint `gorm:"index"`
	Upline   *User `gorm:"foreignKey:UplineID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "users") {
			return User{}, ErrUserCodeExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByCode looks a user up by public code, case-insensitively.
func (d *UserDAO) FindByCode(ctx context.Context, code string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "LOWER(code) = LOWER(?)", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByRole(ctx context.Context, role string) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("role = ?", role).Order("name ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) FindByRoles(ctx context.Context, roles []string) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("role IN ?", roles).Order("name ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// FindAdmin resolves the root of the hierarchy. Exactly one Admin account is
// expected to exist; its absence is a deployment configuration error.
func (d *UserDAO) FindAdmin(ctx context.Context) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "role = ?", "Admin")
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrAdminNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByUplineID(ctx context.Context, uplineID uint) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("upline_id = ?", uplineID).Order("name ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// FindAll loads every user. The hierarchy tree is built from a single full
// scan, which is fine at the user counts this system runs at.
func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}
