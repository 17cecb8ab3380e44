package todo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kbukum/todoapi/database"
)

// ErrNotFound is returned when a todo does not exist or belongs to another user.
var ErrNotFound = errors.New("todo: not found")

// Store persists todos. Every lookup is scoped to an owner.
type Store interface {
	List(ctx context.Context, ownerID int64) ([]Todo, error)
	Get(ctx context.Context, ownerID, id int64) (*Todo, error)
	Create(ctx context.Context, t *Todo) error
	Update(ctx context.Context, ownerID, id int64, in Input) (*Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// GormStore is the relational Store.
type GormStore struct {
	db *database.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a store over db.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

// List returns the owner's todos ordered by id.
func (s *GormStore) List(ctx context.Context, ownerID int64) ([]Todo, error) {
	todos := make([]Todo, 0)
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Get loads one of the owner's todos.
func (s *GormStore) Get(ctx context.Context, ownerID, id int64) (*Todo, error) {
	return get(s.db.WithContext(ctx), ownerID, id)
}

// Create inserts t and fills in its ID and timestamps.
func (s *GormStore) Create(ctx context.Context, t *Todo) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of one of the owner's todos.
func (s *GormStore) Update(ctx context.Context, ownerID, id int64, in Input) (*Todo, error) {
	var updated *Todo
	err := s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		t, err := get(tx, ownerID, id)
		if err != nil {
			return err
		}
		in.apply(t)
		if err := tx.Save(t).Error; err != nil {
			return fmt.Errorf("update todo: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes one of the owner's todos.
func (s *GormStore) Delete(ctx context.Context, ownerID, id int64) error {
	res := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&Todo{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func get(db *gorm.DB, ownerID, id int64) (*Todo, error) {
	var t Todo
	if err := db.Where("id = ? AND owner_id = ?", id, ownerID).Take(&t).Error; err != nil {
		if database.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return &t, nil
}
