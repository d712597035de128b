package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kaloyan-marinov/goal-tracker/internal/auth"
	"github.com/kaloyan-marinov/goal-tracker/internal/handler/dto"
	"github.com/kaloyan-marinov/goal-tracker/internal/model"
	"github.com/kaloyan-marinov/goal-tracker/internal/service"
)

// UserService is the surface of the account service the handler consumes.
type UserService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateEmail(ctx context.Context, principal *model.User, id int64, email string) (*model.User, error)
	Delete(ctx context.Context, principal *model.User, id int64) error
}

// UserHandler serves the account endpoints.
type UserHandler struct {
	svc    UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1.0/users. It is open to anonymous callers, so
// the representation carries account IDs only, never emails.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}

	resp := dto.UserListResponse{Users: make([]dto.UserIDResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.UserIDResponse{ID: u.ID})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1.0/users/{id}. Anonymous, ID-only representation.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "There does not exist a user with the provided user ID.")
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "There does not exist a user with the provided user ID.")
			return
		}
		writeInternalError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserIDResponse{ID: user.ID})
}

// Create handles POST /api/v1.0/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		switch typeErrorField(err) {
		case "email", "password":
			writeError(w, http.StatusBadRequest, "The request body must include both an email and a password.")
		default:
			writeError(w, http.StatusBadRequest, msgContentType)
		}
		return
	}
	if req.Email == nil || req.Password == nil {
		writeError(w, http.StatusBadRequest, "The request body must include both an email and a password.")
		return
	}

	user, err := h.svc.Register(r.Context(), *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "There already exists a user with the provided email.")
			return
		}
		writeInternalError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/users/%d", APIPrefix, user.ID))
	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Update handles PUT /api/v1.0/users/{id}. Password-authenticated; only
// the account owner may change the email.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "There does not exist a user with the provided user ID.")
		return
	}

	var req dto.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		if typeErrorField(err) == "email" {
			writeError(w, http.StatusBadRequest, "If an email is provided in the request body, it must be a string.")
		} else {
			writeError(w, http.StatusBadRequest, msgContentType)
		}
		return
	}

	var email string
	if req.Email != nil {
		email = *req.Email
	}

	user, err := h.svc.UpdateEmail(r.Context(), principal, id, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "There does not exist a user with the provided user ID.")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "You may not edit any user's account other than your own.")
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "There already exists a user with the provided email.")
		default:
			writeInternalError(w, r, h.logger, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Delete handles DELETE /api/v1.0/users/{id}. Password-authenticated;
// removing an account cascades to its goals and their intervals.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "There does not exist a user with the provided user ID.")
		return
	}

	if err := h.svc.Delete(r.Context(), principal, id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "There does not exist a user with the provided user ID.")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "You may not delete any user's account other than your own.")
		default:
			writeInternalError(w, r, h.logger, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1.0/user: the full representation of the
// token-authenticated principal, email included.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, dto.ToUserResponse(principal))
}
