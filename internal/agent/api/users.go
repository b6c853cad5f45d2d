package api

import (
	"net/url"

	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

// ListUsers — GET /api/users (требует токен).
func (c *Client) ListUsers(token string) ([]shared.User, error) {
	var resp []shared.User
	err := c.GetJSON("/api/users", &resp, token)
	return resp, err
}

// GetUser — GET /api/users/{userId}.
func (c *Client) GetUser(userID, token string) (shared.User, error) {
	var resp shared.User
	err := c.GetJSON("/api/users/"+url.PathEscape(userID), &resp, token)
	return resp, err
}

// UpdateUser — PUT /api/users/{userId}. password == nil оставляет пароль прежним.
func (c *Client) UpdateUser(userID, username string, password *string, token string) (shared.User, error) {
	var resp shared.User
	err := c.PutJSON("/api/users/"+url.PathEscape(userID), shared.UpdateUserRequest{Username: username, Password: password}, &resp, token)
	return resp, err
}

// DeleteUser — DELETE /api/users/{userId}.
func (c *Client) DeleteUser(userID, token string) error {
	return c.DeleteJSON("/api/users/"+url.PathEscape(userID), nil, token)
}
