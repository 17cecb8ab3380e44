package todo

import (
	"context"
	"errors"
	"strconv"

	"github.com/kbukum/todoapi/database"
	apperrors "github.com/kbukum/todoapi/errors"
	"github.com/kbukum/todoapi/logger"
	"github.com/kbukum/todoapi/validation"
)

// Service implements todo CRUD on behalf of an authenticated owner. A todo
// owned by someone else is reported as not found.
type Service struct {
	store Store
	log   *logger.Logger
}

// NewService creates a Service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log.WithComponent("todo")}
}

// List returns every todo the owner has.
func (s *Service) List(ctx context.Context, ownerID int64) ([]Todo, error) {
	todos, err := s.store.List(ctx, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "list", 0, err)
	}
	return todos, nil
}

// Get returns one todo.
func (s *Service) Get(ctx context.Context, ownerID, id int64) (*Todo, error) {
	t, err := s.store.Get(ctx, ownerID, id)
	if err != nil {
		return nil, s.fail(ctx, "get", id, err)
	}
	return t, nil
}

// Create validates in and stores a new todo for the owner.
func (s *Service) Create(ctx context.Context, ownerID int64, in Input) (*Todo, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	t := &Todo{OwnerID: ownerID}
	in.apply(t)
	if err := s.store.Create(ctx, t); err != nil {
		return nil, s.fail(ctx, "create", 0, err)
	}
	s.log.WithContext(ctx).Info("Todo created", logger.Fields("todo_id", t.ID, logger.FieldUserID, ownerID))
	return t, nil
}

// Update validates in and replaces the todo's fields.
func (s *Service) Update(ctx context.Context, ownerID, id int64, in Input) (*Todo, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	t, err := s.store.Update(ctx, ownerID, id, in)
	if err != nil {
		return nil, s.fail(ctx, "update", id, err)
	}
	return t, nil
}

// Delete removes the todo.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return s.fail(ctx, "delete", id, err)
	}
	s.log.WithContext(ctx).Info("Todo deleted", logger.Fields("todo_id", id, logger.FieldUserID, ownerID))
	return nil
}

func (s *Service) fail(ctx context.Context, op string, id int64, err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperrors.NotFound("todo", strconv.FormatInt(id, 10))
	}
	s.log.WithContext(ctx).Error("Todo store failed", logger.ErrorFields(op, err))
	return database.FromDatabase(err, "todo")
}
