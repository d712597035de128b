package handler

import (
	"log/slog"
	"net/http"

	"github.com/kaloyan-marinov/goal-tracker/internal/auth"
	"github.com/kaloyan-marinov/goal-tracker/internal/handler/dto"
)

// TokenIssuer mints access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// TokenHandler serves the token endpoint.
type TokenHandler struct {
	issuer TokenIssuer
	logger *slog.Logger
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(issuer TokenIssuer, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{issuer: issuer, logger: logger}
}

// Create handles POST /api/v1.0/tokens. The route sits behind the
// password strategy, so the principal is already resolved here.
func (h *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	token, err := h.issuer.Issue(principal.ID)
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}
