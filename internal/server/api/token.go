// Token endpoint: OAuth2 resource owner password credentials grant
package api

import (
	"errors"
	"net/http"
	"strings"

	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
	shared "github.com/DiegoMiguel/design-webapi/internal/shared/models"
)

const (
	grantTypePassword = "password"
	tokenTypeBearer   = "bearer"

	invalidGrantDescription = "The user name or password is incorrect."
)

// Token выдаёт bearer-токен по username/password.
//
// Тело: application/x-www-form-urlencoded
//
//	grant_type=password&username=...&password=...[&client_id=...]
//
// client_id можно передать и через Basic-авторизацию.
// Ответ всегда несёт Access-Control-Allow-Origin: *.
//
// @Summary      Issue bearer token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        grant_type formData string true  "Must be password"
// @Param        username   formData string true  "User name"
// @Param        password   formData string true  "Password"
// @Param        client_id  formData string false "Client id"
// @Success      200 {object} shared.TokenResponse
// @Failure      400 {object} shared.OAuthErrorResponse
// @Router       /bearerToken [post]
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-store")

	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, shared.OAuthErrorResponse{Error: "invalid_request"})
		return
	}

	clientID := r.PostForm.Get("client_id")
	if clientID == "" {
		clientID, _, _ = r.BasicAuth()
	}
	if err := h.Svc.Auth.ValidateClientAuthentication(r.Context(), clientID); err != nil {
		writeJSON(w, http.StatusBadRequest, shared.OAuthErrorResponse{Error: "invalid_client"})
		return
	}
	h.Log.Sugar().Debugw("token request", "client_id", clientID)

	if !strings.EqualFold(r.PostForm.Get("grant_type"), grantTypePassword) {
		writeJSON(w, http.StatusBadRequest, shared.OAuthErrorResponse{Error: serr.ErrUnsupportedGrantType.Error()})
		return
	}

	tok, err := h.Svc.Auth.GrantResourceOwnerCredentials(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, serr.ErrInvalidGrant) {
			writeJSON(w, http.StatusBadRequest, shared.OAuthErrorResponse{
				Error:            serr.ErrInvalidGrant.Error(),
				ErrorDescription: invalidGrantDescription,
			})
			return
		}
		h.Log.Sugar().Errorw("token grant failed", "client_id", clientID, "err", err)
		writeJSON(w, http.StatusBadRequest, shared.OAuthErrorResponse{Error: "server_error"})
		return
	}

	writeJSON(w, http.StatusOK, shared.TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(tok.ExpiresIn.Seconds()),
		UserName:    tok.Username,
		Role:        tok.Role,
	})
}
