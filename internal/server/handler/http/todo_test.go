package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atinyakov/todovault/internal/models"
	handler "github.com/atinyakov/todovault/internal/server/handler/http"
	"github.com/atinyakov/todovault/internal/service"
	"go.uber.org/zap"
)

// fakeTodoService records calls and returns preconfigured results.
type fakeTodoService struct {
	calls int

	todos []models.TodoItem
	item  *models.TodoItem
	err   error

	receivedUserID string
	receivedTodoID string
	receivedData   string
	receivedDone   bool
}

func (f *fakeTodoService) List(ctx context.Context, userID string) ([]models.TodoItem, error) {
	f.calls++
	f.receivedUserID = userID
	return f.todos, f.err
}

func (f *fakeTodoService) Add(ctx context.Context, userID, data string) (*models.TodoItem, error) {
	f.calls++
	f.receivedUserID = userID
	f.receivedData = data
	return f.item, f.err
}

func (f *fakeTodoService) EditText(ctx context.Context, userID, todoID, data string) (*models.TodoItem, error) {
	f.calls++
	f.receivedUserID = userID
	f.receivedTodoID = todoID
	f.receivedData = data
	return f.item, f.err
}

func (f *fakeTodoService) EditCompletion(ctx context.Context, userID, todoID string, completed bool) (*models.TodoItem, error) {
	f.calls++
	f.receivedUserID = userID
	f.receivedTodoID = todoID
	f.receivedDone = completed
	return f.item, f.err
}

func (f *fakeTodoService) Delete(ctx context.Context, userID, todoID string) error {
	f.calls++
	f.receivedUserID = userID
	f.receivedTodoID = todoID
	return f.err
}

func newTodoHandler(fake *fakeTodoService) *handler.TodoHandler {
	return &handler.TodoHandler{TodoService: fake, Log: zap.NewNop()}
}

func TestTodoHandler_List_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	fake := &fakeTodoService{todos: []models.TodoItem{
		{ID: "t1", Data: "first", Completed: false, CreatedAt: now},
		{ID: "t2", Data: "second", Completed: true, CreatedAt: now.Add(time.Second)},
	}}
	h := newTodoHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/gettodos", bytes.NewBufferString(`{"token":"x"}`))
	w := httptest.NewRecorder()
	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Todos []models.TodoItem `json:"todos"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if len(resp.Todos) != 2 || resp.Todos[0].ID != "t1" || resp.Todos[1].ID != "t2" {
		t.Errorf("todos = %+v; want the full ordered list", resp.Todos)
	}
}

func TestTodoHandler_List_UserNotFound(t *testing.T) {
	fake := &fakeTodoService{err: service.ErrNotFound}
	h := newTodoHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/gettodos", bytes.NewBufferString(`{"token":"x"}`))
	w := httptest.NewRecorder()
	h.List(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("User not found")) {
		t.Errorf("body = %q; want user-not-found error", w.Body.String())
	}
}

func TestTodoHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svcErr         error
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "missing data",
			body:           `{"token":"x"}`,
			svcErr:         service.ErrValidation,
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Data is required",
		},
		{
			name:           "user not found",
			body:           `{"token":"x","data":"buy milk"}`,
			svcErr:         service.ErrNotFound,
			expectedCode:   http.StatusNotFound,
			expectedSubstr: "User not found",
		},
		{
			name:           "store failure",
			body:           `{"token":"x","data":"buy milk"}`,
			svcErr:         errors.New("db down"),
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "Server error adding new todo",
		},
		{
			name:           "success",
			body:           `{"token":"x","data":"buy milk"}`,
			expectedCode:   http.StatusOK,
			expectedSubstr: "new todo added successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTodoService{item: &models.TodoItem{ID: "t1"}, err: tt.svcErr}
			h := newTodoHandler(fake)

			req := httptest.NewRequest(http.MethodPost, "/addtodo", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.Add(w, req)

			if w.Code != tt.expectedCode {
				t.Fatalf("status = %d; want %d", w.Code, tt.expectedCode)
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("body = %q; want it to contain %q", w.Body.String(), tt.expectedSubstr)
			}
		})
	}
}

func TestTodoHandler_EditText_Success(t *testing.T) {
	updated := &models.TodoItem{ID: "t1", Data: "new text", Completed: true}
	fake := &fakeTodoService{item: updated}
	h := newTodoHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/edittododata",
		bytes.NewBufferString(`{"token":"x","_id":"t1","data":"new text"}`))
	w := httptest.NewRecorder()
	h.EditText(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedTodoID != "t1" || fake.receivedData != "new text" {
		t.Errorf("service received (%q, %q); want (t1, new text)", fake.receivedTodoID, fake.receivedData)
	}

	var resp struct {
		Response string          `json:"response"`
		Todo     models.TodoItem `json:"todo"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if resp.Response != "Todo updated successfully" {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.Todo.Data != "new text" {
		t.Errorf("todo = %+v; want the updated item", resp.Todo)
	}
}

func TestTodoHandler_EditText_NotFound(t *testing.T) {
	fake := &fakeTodoService{err: service.ErrNotFound}
	h := newTodoHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/edittododata",
		bytes.NewBufferString(`{"token":"x","_id":"foreign","data":"hijack"}`))
	w := httptest.NewRecorder()
	h.EditText(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("User or Todo not found")) {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestTodoHandler_EditCompletion(t *testing.T) {
	fake := &fakeTodoService{item: &models.TodoItem{ID: "t1", Data: "text", Completed: true}}
	h := newTodoHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/edittodocompleted",
		bytes.NewBufferString(`{"token":"x","_id":"t1","completed":true}`))
	w := httptest.NewRecorder()
	h.EditCompletion(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedTodoID != "t1" || !fake.receivedDone {
		t.Errorf("service received (%q, %v); want (t1, true)", fake.receivedTodoID, fake.receivedDone)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"completed":true`)) {
		t.Errorf("body = %q; want it to carry the updated todo", w.Body.String())
	}
}

func TestTodoHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		svcErr         error
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "success",
			expectedCode:   http.StatusOK,
			expectedSubstr: "Todo deleted successfully",
		},
		{
			name:           "user not found",
			svcErr:         service.ErrNotFound,
			expectedCode:   http.StatusNotFound,
			expectedSubstr: "User or Todo not found",
		},
		{
			name:           "store failure",
			svcErr:         errors.New("db down"),
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "Server error deleting todo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTodoService{err: tt.svcErr}
			h := newTodoHandler(fake)

			req := httptest.NewRequest(http.MethodPost, "/deletetodo",
				bytes.NewBufferString(`{"token":"x","_id":"t1"}`))
			w := httptest.NewRecorder()
			h.Delete(w, req)

			if w.Code != tt.expectedCode {
				t.Fatalf("status = %d; want %d", w.Code, tt.expectedCode)
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("body = %q; want it to contain %q", w.Body.String(), tt.expectedSubstr)
			}
		})
	}
}
