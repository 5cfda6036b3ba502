package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/todovault/internal/models"
	"github.com/atinyakov/todovault/internal/repository"
	"github.com/google/uuid"
)

// TodoRepository defines the persistence operations needed by the TodoService.
// Every mutation is expected to be a single atomic update filtered on the
// owner ID (and item ID where applicable).
type TodoRepository interface {
	// FindByID returns the user with the given ID, or repository.ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)
	// ListTodos returns the user's full todo list in insertion order.
	ListTodos(ctx context.Context, userID string) ([]models.TodoItem, error)
	// AppendTodo appends an item; repository.ErrNotFound if the user is absent.
	AppendTodo(ctx context.Context, userID string, item models.TodoItem) error
	// UpdateTodoText replaces the item's text; repository.ErrNotFound if the
	// user or the todo within that user is absent.
	UpdateTodoText(ctx context.Context, userID, todoID, data string) (*models.TodoItem, error)
	// UpdateTodoCompletion sets the item's completed flag; same semantics.
	UpdateTodoCompletion(ctx context.Context, userID, todoID string, completed bool) (*models.TodoItem, error)
	// RemoveTodo deletes the item; removing an absent ID is not an error.
	RemoveTodo(ctx context.Context, userID, todoID string) error
}

// TodoService implements the owner-scoped todo operations. Every call takes
// the authenticated user's ID; items belonging to other users are never
// visible, so a foreign todo ID behaves exactly like a missing one.
type TodoService struct {
	repo TodoRepository
}

// NewTodoService constructs a TodoService with the provided repository.
func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// List returns the user's full todo list, unfiltered and in insertion order.
// Returns ErrNotFound if the user does not exist.
func (s *TodoService) List(ctx context.Context, userID string) ([]models.TodoItem, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return nil, mapRepoErr(err)
	}
	todos, err := s.repo.ListTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Add appends a new item with the given text to the user's list. The item
// starts uncompleted with its creation timestamp set once, here.
// Returns ErrValidation on empty text and ErrNotFound on a missing user.
func (s *TodoService) Add(ctx context.Context, userID, data string) (*models.TodoItem, error) {
	if data == "" {
		return nil, ErrValidation
	}

	item := models.TodoItem{
		ID:        uuid.NewString(),
		Data:      data,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AppendTodo(ctx, userID, item); err != nil {
		return nil, mapRepoErr(err)
	}
	return &item, nil
}

// EditText updates the text of the item identified by (userID, todoID),
// leaving completion state and timestamp untouched.
// Returns ErrValidation on empty text and ErrNotFound if the user or the
// todo within that user is absent.
func (s *TodoService) EditText(ctx context.Context, userID, todoID, data string) (*models.TodoItem, error) {
	if data == "" {
		return nil, ErrValidation
	}
	item, err := s.repo.UpdateTodoText(ctx, userID, todoID, data)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return item, nil
}

// EditCompletion sets the completed flag of the item identified by
// (userID, todoID), leaving text and timestamp untouched.
// Returns ErrNotFound if the user or the todo within that user is absent.
func (s *TodoService) EditCompletion(ctx context.Context, userID, todoID string, completed bool) (*models.TodoItem, error) {
	item, err := s.repo.UpdateTodoCompletion(ctx, userID, todoID, completed)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return item, nil
}

// Delete removes the item identified by (userID, todoID) from the user's
// list. Deleting an ID that is already absent succeeds; only a missing user
// yields ErrNotFound.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return mapRepoErr(err)
	}
	if err := s.repo.RemoveTodo(ctx, userID, todoID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
