package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapp/internal/cache"
	"todoapp/internal/errors"
	"todoapp/internal/model"
	"todoapp/internal/repository"
)

// TodoService exposes owner-scoped todo operations. Every call takes the
// identity resolved by the auth middleware; the owner is never read from
// client input.
type TodoService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Todo, error)
	Toggle(ctx context.Context, ownerID, todoID uuid.UUID) (*model.Todo, error)
	Delete(ctx context.Context, ownerID, todoID uuid.UUID) error
}

type todoService struct {
	repo  repository.TodoRepository
	cache cache.Store
}

// NewTodoService builds a TodoService with repository and cache.
func NewTodoService(repo repository.TodoRepository, cache cache.Store) TodoService {
	return &todoService{repo: repo, cache: cache}
}

// List returns all todos owned by ownerID in insertion order. An owner
// with no todos gets an empty list, never null.
func (s *todoService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	key := cache.TodoListKey(ownerID)
	if data := s.cache.Get(ctx, key); data != nil {
		var cached []model.Todo
		if err := json.Unmarshal(data, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	if payload, err := json.Marshal(todos); err == nil {
		s.cache.Set(ctx, key, payload, cache.TodoListTTL)
	}
	return todos, nil
}

// Create persists a new incomplete todo for ownerID.
func (s *todoService) Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ErrEmptyTodoText
	}

	todo := &model.Todo{
		ID:        uuid.New(),
		Text:      text,
		Completed: false,
		UserID:    ownerID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.cache.Delete(ctx, cache.TodoListKey(ownerID))
	return todo, nil
}

// Toggle flips the completed flag of the todo. The lookup is filtered by
// owner, so a todo belonging to someone else reads as absent.
func (s *todoService) Toggle(ctx context.Context, ownerID, todoID uuid.UUID) (*model.Todo, error) {
	todo, err := s.repo.FindByIDAndOwner(ctx, todoID, ownerID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}

	todo.Completed = !todo.Completed
	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}

	s.cache.Delete(ctx, cache.TodoListKey(ownerID))
	return todo, nil
}

// Delete removes the todo under the same ownership filter as Toggle.
func (s *todoService) Delete(ctx context.Context, ownerID, todoID uuid.UUID) error {
	if err := s.repo.DeleteByIDAndOwner(ctx, todoID, ownerID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrTodoNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}

	s.cache.Delete(ctx, cache.TodoListKey(ownerID))
	return nil
}
