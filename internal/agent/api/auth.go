// Методы клиента для регистрации и получения bearer-токена.
package api

import (
	"net/url"

	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

// ClientID передаётся в token endpoint как client_id.
const ClientID = "todoctl"

// Register создаёт пользователя через анонимный POST /api/users.
func (c *Client) Register(username, password string) (shared.User, error) {
	var resp shared.User
	err := c.PostJSON("/api/users", shared.CreateUserRequest{Username: username, Password: password}, &resp, "")
	return resp, err
}

// Token получает access токен по password grant.
func (c *Client) Token(username, password string) (shared.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	form.Set("client_id", ClientID)

	var resp shared.TokenResponse
	err := c.PostForm(c.tokenPath, form, &resp)
	return resp, err
}
