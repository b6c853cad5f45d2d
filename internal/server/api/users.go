// HTTP-хендлеры ресурса /api/users
package api

import (
	"net/http"

	"github.com/DiegoMiguel/design-webapi/internal/server/models"
	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

// ListUsers возвращает всех не удалённых пользователей.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  shared.User
// @Failure      400 {object} shared.ErrorResponse
// @Failure      401 {object} shared.ErrorResponse "Unauthorized"
// @Router       /api/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.Users.List(r.Context())
	if err != nil {
		h.fail(w, r, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, models.PublicUsers(users))
}

// GetUser возвращает пользователя по id.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID (uuid)"
// @Success      200 {object} shared.User
// @Failure      400 {object} shared.ErrorResponse
// @Failure      401 {object} shared.ErrorResponse "Unauthorized"
// @Router       /api/users/{userId} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	u, err := h.Svc.Users.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}

// CreateUser — саморегистрация, токен не нужен.
//
// @Summary      Register user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body shared.CreateUserRequest true "User"
// @Success      200 {object} shared.User
// @Failure      400 {object} shared.ValidationErrorResponse "Validation failed"
// @Failure      400 {object} shared.ErrorResponse
// @Router       /api/users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req shared.CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.Svc.Users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, r, "register user", err)
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}

// UpdateUser меняет username и, если передан, пароль.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path string                   true "User ID (uuid)"
// @Param        request body shared.UpdateUserRequest true "User"
// @Success      200 {object} shared.User
// @Failure      400 {object} shared.ErrorResponse
// @Failure      401 {object} shared.ErrorResponse "Unauthorized"
// @Router       /api/users/{userId} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	var req shared.UpdateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.Svc.Users.Update(r.Context(), id, req.Username, req.Password)
	if err != nil {
		h.fail(w, r, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}

// DeleteUser логически удаляет пользователя.
//
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Param        userId path string true "User ID (uuid)"
// @Success      200
// @Failure      400 {object} shared.ErrorResponse
// @Failure      401 {object} shared.ErrorResponse "Unauthorized"
// @Router       /api/users/{userId} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.Svc.Users.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete user", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
