package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/todovault/internal/middleware"
	"github.com/atinyakov/todovault/internal/models"
	"github.com/atinyakov/todovault/internal/service"
	"go.uber.org/zap"
)

// TodoService defines the interface for owner-scoped todo operations
// required by the TodoHandler. Every call is keyed by the authenticated
// user's ID taken from the request context.
type TodoService interface {
	List(ctx context.Context, userID string) ([]models.TodoItem, error)
	Add(ctx context.Context, userID, data string) (*models.TodoItem, error)
	EditText(ctx context.Context, userID, todoID, data string) (*models.TodoItem, error)
	EditCompletion(ctx context.Context, userID, todoID string, completed bool) (*models.TodoItem, error)
	Delete(ctx context.Context, userID, todoID string) error
}

// TodoHandler handles HTTP requests for the todo CRUD endpoints.
type TodoHandler struct {
	TodoService TodoService
	Log         *zap.Logger
}

// todoRequest covers the body fields of all protected todo endpoints. The
// "token" field is consumed by the auth middleware before handlers run.
type todoRequest struct {
	ID        string `json:"_id"`
	Data      string `json:"data"`
	Completed bool   `json:"completed"`
}

// List handles POST /gettodos. Responds 200 with the user's full todo list
// in insertion order, or 404 if the user no longer exists.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	todos, err := h.TodoService.List(r.Context(), userID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("list todos failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error retrieving todos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"todos": todos})
}

// Add handles POST /addtodo. It requires a non-empty "data" field and appends
// a new uncompleted item to the user's list.
func (h *TodoHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Data is required")
		return
	}

	_, err := h.TodoService.Add(r.Context(), userID, req.Data)
	if errors.Is(err, service.ErrValidation) {
		writeError(w, http.StatusBadRequest, "Data is required")
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("add todo failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error adding new todo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": "new todo added successfully"})
}

// EditText handles POST /edittododata. It updates the text of the item
// identified by "_id" and responds with the updated item.
func (h *TodoHandler) EditText(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Data is required")
		return
	}

	item, err := h.TodoService.EditText(r.Context(), userID, req.ID, req.Data)
	if errors.Is(err, service.ErrValidation) {
		writeError(w, http.StatusBadRequest, "Data is required")
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User or Todo not found")
		return
	}
	if err != nil {
		h.Log.Error("edit todo text failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error updating todo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"response": "Todo updated successfully",
		"todo":     item,
	})
}

// EditCompletion handles POST /edittodocompleted. It sets the completed flag
// of the item identified by "_id" and responds with the updated item.
func (h *TodoHandler) EditCompletion(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	item, err := h.TodoService.EditCompletion(r.Context(), userID, req.ID, req.Completed)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User or Todo not found")
		return
	}
	if err != nil {
		h.Log.Error("edit todo completion failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error updating todo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"response": "Todo updated successfully",
		"todo":     item,
	})
}

// Delete handles POST /deletetodo. It removes the item identified by "_id"
// from the user's list. Deleting an ID that is already absent still responds
// 200; only a missing user yields 404.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	err := h.TodoService.Delete(r.Context(), userID, req.ID)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User or Todo not found")
		return
	}
	if err != nil {
		h.Log.Error("delete todo failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error deleting todo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": "Todo deleted successfully"})
}
