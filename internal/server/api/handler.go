// Package api реализует HTTP-слой todo API.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - валидацию тел запросов (validator/v10);
//   - маппинг доменных ошибок (service/repository) в HTTP-ответы;
//   - token endpoint (OAuth2 password grant).
//
// Маршруты и middleware собираются в internal/server/net/http.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/DiegoMiguel/design-webapi/internal/server/middleware"
	"github.com/DiegoMiguel/design-webapi/internal/server/service"
	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
	"github.com/DiegoMiguel/design-webapi/internal/shared/logger"
	"github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Health: проверка доступности БД для /health;
//   - Log: логгер для записи событий и ошибок.
type Handler struct {
	Svc          *service.Services
	Health       service.HealthRepo
	Log          *logger.HTTPLogger
	MaxBodyBytes int64

	validate *validator.Validate
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, health service.HealthRepo, log *logger.HTTPLogger) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках валидации используем имена JSON-полей
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if log == nil {
		log = logger.NewHTTPLogger()
	}

	return &Handler{
		Svc:      svc,
		Health:   health,
		Log:      log,
		validate: v,
	}
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// normalizer — тело запроса, которое приводит поля к каноничному виду
// (обрезка пробелов) до валидации.
type normalizer interface {
	Normalize()
}

// decode читает JSON-тело, нормализует и валидирует его по тегам validate.
// При ошибке сам пишет ответ 400 и возвращает false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return false
	}

	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				rule := fe.Tag()
				if fe.Param() != "" {
					rule += "=" + fe.Param()
				}
				fields[fe.Field()] = rule
			}
			writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Errors: fields})
			return false
		}
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return false
	}
	return true
}

// pathUUID разбирает параметр пути как UUID. При ошибке пишет 400.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return uuid.Nil, false
	}
	return id, true
}

// fail — все ошибки операций отдаются как 400 с сообщением.
// Внутренние ошибки логируются целиком вместе с id вызывающего (если запрос
// прошёл через AuthMiddleware), наружу уходит только "internal error".
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	for _, known := range []error{
		serr.ErrInvalidInput,
		serr.ErrNotFound,
		serr.ErrAlreadyExists,
		serr.ErrOwnerNotFound,
		serr.ErrBadJSON,
	} {
		if errors.Is(err, known) {
			WriteError(w, http.StatusBadRequest, known)
			return
		}
	}

	fields := []any{"method", r.Method, "uri", r.RequestURI, "err", err}
	if uid, ok := middleware.UserIDFromContext(r.Context()); ok {
		fields = append(fields, "user_id", uid)
	}
	h.Log.Sugar().Errorw(op+" failed", fields...)
	WriteError(w, http.StatusBadRequest, serr.ErrInternal)
}

// HealthCheck проверяет доступность БД.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} models.ErrorResponse
// @Router       /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health.Ping(r.Context()); err != nil {
			h.Log.Sugar().Errorw("health check failed", "err", err)
			WriteError(w, http.StatusServiceUnavailable, serr.ErrInternal)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
