// Package repository provides persistence implementations for user and
// todo-list storage using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/todovault/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrNotFound signals that the requested user, or todo within the user's
	// list, does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate signals a unique-constraint collision on username or email.
	ErrDuplicate = errors.New("duplicate user")
)

// Postgres error codes surfaced as sentinel errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// PostgresUserRepository implements user and todo persistence against a
// PostgreSQL database. Every mutation is a single statement whose WHERE
// clause carries the owner (and item) filter, so per-user updates are atomic
// without a read-modify-write cycle.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// FindByEmail returns the user registered under the given email.
// Returns ErrNotFound if no such user exists.
func (s *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE email = $1`,
		email,
	)
}

// FindByEmailOrUsername returns a user matching either the email or the
// username. It is used at signup to detect collisions on either field.
// Returns ErrNotFound if neither matches.
func (s *PostgresUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return s.findOne(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE email = $1 OR username = $2`,
		email, username,
	)
}

// FindByID returns the user with the given identifier.
// Returns ErrNotFound if no such user exists.
func (s *PostgresUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE id = $1`,
		id,
	)
}

func (s *PostgresUserRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user with an empty todo list.
// Returns ErrDuplicate if the username or email is already registered.
func (s *PostgresUserRepository) Create(ctx context.Context, id, username, email string, passwordHash []byte) (*models.User, error) {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4)`,
		id, username, email, passwordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &models.User{ID: id, Username: username, Email: email, PasswordHash: passwordHash}, nil
}

// ListTodos fetches the full todo list for the given user, in insertion order.
//
//	ctx:    context for cancellation and deadlines
//	userID: identifier of the owning user
//
// Returns an empty slice when the user has no items. It does not distinguish
// a missing user from a user without todos; callers resolve the user first.
func (s *PostgresUserRepository) ListTodos(ctx context.Context, userID string) ([]models.TodoItem, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, data, completed, created_at FROM todos
		WHERE user_id = $1 ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListTodos: %w", err)
	}
	defer rows.Close()

	todos := []models.TodoItem{}
	for rows.Next() {
		var item models.TodoItem
		if err := rows.Scan(&item.ID, &item.Data, &item.Completed, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		todos = append(todos, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTodos rows: %w", err)
	}
	return todos, nil
}

// AppendTodo appends an item to the user's list as a single insert.
// Returns ErrNotFound if the user does not exist (foreign key miss).
func (s *PostgresUserRepository) AppendTodo(ctx context.Context, userID string, item models.TodoItem) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO todos (id, user_id, data, completed, created_at) VALUES ($1, $2, $3, $4, $5)`,
		item.ID, userID, item.Data, item.Completed, item.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("append todo: %w", err)
	}
	return nil
}

// UpdateTodoText replaces the text of a single item, leaving every other field
// untouched. The (user_id, id) filter is the unit of atomicity.
// Returns the updated item, or ErrNotFound if the user or the todo within
// that user is absent.
func (s *PostgresUserRepository) UpdateTodoText(ctx context.Context, userID, todoID, data string) (*models.TodoItem, error) {
	return s.updateOne(ctx, `
		UPDATE todos SET data = $3 WHERE user_id = $1 AND id = $2
		RETURNING id, data, completed, created_at
	`, userID, todoID, data)
}

// UpdateTodoCompletion sets the completed flag of a single item, leaving every
// other field untouched. Same lookup and failure semantics as UpdateTodoText.
func (s *PostgresUserRepository) UpdateTodoCompletion(ctx context.Context, userID, todoID string, completed bool) (*models.TodoItem, error) {
	return s.updateOne(ctx, `
		UPDATE todos SET completed = $3 WHERE user_id = $1 AND id = $2
		RETURNING id, data, completed, created_at
	`, userID, todoID, completed)
}

func (s *PostgresUserRepository) updateOne(ctx context.Context, query string, args ...any) (*models.TodoItem, error) {
	var item models.TodoItem
	err := s.DB.QueryRowContext(ctx, query, args...).
		Scan(&item.ID, &item.Data, &item.Completed, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return &item, nil
}

// RemoveTodo deletes the item matching (userID, todoID). Deleting an id that
// is already absent is not an error; the caller verifies the user separately.
func (s *PostgresUserRepository) RemoveTodo(ctx context.Context, userID, todoID string) error {
	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM todos WHERE user_id = $1 AND id = $2`,
		userID, todoID,
	)
	if err != nil {
		return fmt.Errorf("remove todo: %w", err)
	}
	return nil
}
