package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/todoapi/database"
)

var (
	// ErrUserNotFound is returned when no user matches a lookup.
	ErrUserNotFound = errors.New("identity: user not found")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("identity: username already exists")
)

// Store persists users.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// GormStore is the relational Store. Username uniqueness is enforced by the
// idx_users_username unique index.
type GormStore struct {
	db *database.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a store over db.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

// Create inserts u and fills in its ID and timestamps.
func (s *GormStore) Create(ctx context.Context, u *User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if database.IsDuplicateError(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByUsername looks a user up by exact username.
func (s *GormStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error; err != nil {
		return nil, notFound(err, "find user by username")
	}
	return &u, nil
}

// FindByID looks a user up by primary key.
func (s *GormStore) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, notFound(err, "find user by id")
	}
	return &u, nil
}

// Delete removes the user and, through the foreign key, their todos.
func (s *GormStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func notFound(err error, op string) error {
	if database.IsNotFoundError(err) {
		return ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
