// HTTP-хендлеры ресурса /api/todos
package api

import (
	"net/http"

	"github.com/DiegoMiguel/design-webapi/internal/server/models"
	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

// ListTodos возвращает все не удалённые задачи.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Success      200 {array}  shared.Todo
// @Failure      400 {object} shared.ErrorResponse
// @Router       /api/todos [get]
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.Svc.Todos.List(r.Context())
	if err != nil {
		h.fail(w, r, "list todos", err)
		return
	}
	writeJSON(w, http.StatusOK, models.PublicTodos(todos))
}

// GetTodoForUser возвращает задачу todoId, принадлежащую userId.
//
// @Summary      Get todo of user
// @Tags         todos
// @Produce      json
// @Param        todoId path string true "Todo ID (uuid)"
// @Param        userId path string true "Owner ID (uuid)"
// @Success      200 {object} shared.Todo
// @Failure      400 {object} shared.ErrorResponse
// @Router       /api/todos/{todoId}/{userId} [get]
func (h *Handler) GetTodoForUser(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r, "todoId")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	t, err := h.Svc.Todos.GetForUser(r.Context(), todoID, userID)
	if err != nil {
		h.fail(w, r, "get todo", err)
		return
	}
	writeJSON(w, http.StatusOK, t.Public())
}

// ListUserTodos возвращает задачи одного пользователя.
//
// @Summary      List todos of user
// @Tags         todos
// @Produce      json
// @Param        userId path string true "Owner ID (uuid)"
// @Success      200 {array}  shared.Todo
// @Failure      400 {object} shared.ErrorResponse
// @Router       /api/todos/{userId} [get]
func (h *Handler) ListUserTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	todos, err := h.Svc.Todos.ListByUser(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "list user todos", err)
		return
	}
	writeJSON(w, http.StatusOK, models.PublicTodos(todos))
}

// CreateTodo создаёт одну задачу, владелец — userId из пути.
//
// @Summary      Create todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        userId  path string             true "Owner ID (uuid)"
// @Param        request body shared.TodoRequest true "Todo"
// @Success      200 {object} shared.Todo
// @Failure      400 {object} shared.ValidationErrorResponse "Validation failed"
// @Failure      400 {object} shared.ErrorResponse
// @Router       /api/todos/{userId} [post]
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	var req shared.TodoRequest
	if !h.decode(w, r, &req) {
		return
	}

	t, err := h.Svc.Todos.Create(r.Context(), userID, req.Description)
	if err != nil {
		h.fail(w, r, "create todo", err)
		return
	}
	writeJSON(w, http.StatusOK, t.Public())
}

// UpdateTodo заменяет описание задачи.
//
// @Summary      Update todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        todoId  path string             true "Todo ID (uuid)"
// @Param        request body shared.TodoRequest true "Todo"
// @Success      200 {object} shared.Todo
// @Failure      400 {object} shared.ErrorResponse
// @Router       /api/todos/{todoId} [put]
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r, "todoId")
	if !ok {
		return
	}

	var req shared.TodoRequest
	if !h.decode(w, r, &req) {
		return
	}

	t, err := h.Svc.Todos.Update(r.Context(), todoID, req.Description)
	if err != nil {
		h.fail(w, r, "update todo", err)
		return
	}
	writeJSON(w, http.StatusOK, t.Public())
}

// DeleteTodo логически удаляет задачу. Успех — 200 с пустым телом.
//
// @Summary      Delete todo
// @Tags         todos
// @Param        todoId path string true "Todo ID (uuid)"
// @Success      200
// @Failure      400 {object} shared.ErrorResponse
// @Router       /api/todos/{todoId} [delete]
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathUUID(w, r, "todoId")
	if !ok {
		return
	}

	if err := h.Svc.Todos.Delete(r.Context(), todoID); err != nil {
		h.fail(w, r, "delete todo", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
