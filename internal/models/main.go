// Package models defines the core data structures for users and todo items.
package models

import "time"

// User represents an application user with credentials and an owned todo list.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"_id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// Email is the address the user logs in with.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash []byte `json:"-"`
	// TodoList holds the user's todo items in insertion order.
	TodoList []TodoItem `json:"todoList,omitempty"`
}

// TodoItem represents a single entry in a user's todo list.
type TodoItem struct {
	// ID is the unique identifier for the item, scoped to its owner.
	ID string `json:"_id"`
	// Data is the text content of the item.
	Data string `json:"data"`
	// Completed reports whether the item has been marked done.
	Completed bool `json:"completed"`
	// CreatedAt is set once, when the item is appended.
	CreatedAt time.Time `json:"createdAt"`
}
