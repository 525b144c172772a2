package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/supplychain-events/internal/auth"
)

type AuthHandlers struct {
	operator auth.Operator
	tokens   *auth.TokenService
}

func NewAuthHandlers(operator auth.Operator, tokens *auth.TokenService) *AuthHandlers {
	return &AuthHandlers{operator: operator, tokens: tokens}
}

// Login exchanges the operator credential for a bearer token.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.operator.Authenticate(req.Username, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, expiresAt, err := h.tokens.Generate(req.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"accessToken": token,
		"expiresAt":   expiresAt.Format(time.RFC3339),
	})
}
