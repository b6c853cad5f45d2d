package api

import (
	"net/url"

	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

// ListTodos — GET /api/todos.
func (c *Client) ListTodos(token string) ([]shared.Todo, error) {
	var resp []shared.Todo
	err := c.GetJSON("/api/todos", &resp, token)
	return resp, err
}

// ListUserTodos — GET /api/todos/{userId}.
func (c *Client) ListUserTodos(userID, token string) ([]shared.Todo, error) {
	var resp []shared.Todo
	err := c.GetJSON("/api/todos/"+url.PathEscape(userID), &resp, token)
	return resp, err
}

// GetTodo — GET /api/todos/{todoId}/{userId}.
func (c *Client) GetTodo(todoID, userID, token string) (shared.Todo, error) {
	var resp shared.Todo
	err := c.GetJSON("/api/todos/"+url.PathEscape(todoID)+"/"+url.PathEscape(userID), &resp, token)
	return resp, err
}

// CreateTodo — POST /api/todos/{userId}.
func (c *Client) CreateTodo(userID, description, token string) (shared.Todo, error) {
	var resp shared.Todo
	err := c.PostJSON("/api/todos/"+url.PathEscape(userID), shared.TodoRequest{Description: description}, &resp, token)
	return resp, err
}

// UpdateTodo — PUT /api/todos/{todoId}.
func (c *Client) UpdateTodo(todoID, description, token string) (shared.Todo, error) {
	var resp shared.Todo
	err := c.PutJSON("/api/todos/"+url.PathEscape(todoID), shared.TodoRequest{Description: description}, &resp, token)
	return resp, err
}

// DeleteTodo — DELETE /api/todos/{todoId}.
func (c *Client) DeleteTodo(todoID, token string) error {
	return c.DeleteJSON("/api/todos/"+url.PathEscape(todoID), nil, token)
}
