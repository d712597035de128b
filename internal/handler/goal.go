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

// GoalService is the surface of the goal service the handler consumes.
type GoalService interface {
	Create(ctx context.Context, principal *model.User, description string) (*model.Goal, error)
	Get(ctx context.Context, principal *model.User, id int64) (*model.Goal, error)
	List(ctx context.Context, principal *model.User) ([]*model.Goal, error)
	Update(ctx context.Context, principal *model.User, id int64, description *string) (*model.Goal, error)
	Delete(ctx context.Context, principal *model.User, id int64) error
}

// GoalHandler serves the goal endpoints. All of them sit behind the token
// strategy.
type GoalHandler struct {
	svc    GoalService
	logger *slog.Logger
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(svc GoalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1.0/goals: all goals of the principal.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	goals, err := h.svc.List(r.Context(), principal)
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}

	resp := dto.GoalListResponse{Goals: make([]dto.GoalResponse, 0, len(goals))}
	for _, g := range goals {
		resp.Goals = append(resp.Goals, dto.ToGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1.0/goals/{id}. A goal that exists but belongs to
// another account is a 403; a missing one is a 404.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "There does not exist a goal with the provided goal ID.")
		return
	}

	goal, err := h.svc.Get(r.Context(), principal, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			writeError(w, http.StatusNotFound, "There does not exist a goal with the provided goal ID.")
		case errors.Is(err, service.ErrGoalForbidden):
			writeError(w, http.StatusForbidden, "You may not access goals, which do not belong to you.")
		default:
			writeInternalError(w, r, h.logger, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, dto.ToGoalResponse(goal))
}

// Create handles POST /api/v1.0/goals.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	var req dto.CreateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		if typeErrorField(err) == "description" {
			writeError(w, http.StatusBadRequest, "The request body must include a description, which must be a string.")
		} else {
			writeError(w, http.StatusBadRequest, msgContentType)
		}
		return
	}
	if req.Description == nil {
		writeError(w, http.StatusBadRequest, "The request body must include a description, which must be a string.")
		return
	}
	if *req.Description == "" {
		writeError(w, http.StatusBadRequest, "The description must be a non-empty string.")
		return
	}

	goal, err := h.svc.Create(r.Context(), principal, *req.Description)
	if err != nil {
		if errors.Is(err, service.ErrGoalExists) {
			writeError(w, http.StatusForbidden, "You already have a goal with the same description.")
			return
		}
		writeInternalError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/goals/%d", APIPrefix, goal.ID))
	writeJSON(w, http.StatusCreated, dto.ToGoalResponse(goal))
}

// Update handles PUT /api/v1.0/goals/{id}. An omitted description means
// "no change". Missing and foreign goals collapse into the same 400.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "You may only edit goals that both exist and belong to you.")
		return
	}

	var req dto.UpdateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		if typeErrorField(err) == "description" {
			writeError(w, http.StatusBadRequest, "If a description is provided in the request body, it must be a string.")
		} else {
			writeError(w, http.StatusBadRequest, msgContentType)
		}
		return
	}
	if req.Description != nil && *req.Description == "" {
		writeError(w, http.StatusBadRequest, "If a description is provided in the request body, it must be a non-empty string.")
		return
	}

	goal, err := h.svc.Update(r.Context(), principal, id, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotOwned):
			writeError(w, http.StatusBadRequest, "You may only edit goals that both exist and belong to you.")
		case errors.Is(err, service.ErrGoalExists):
			writeError(w, http.StatusForbidden, "You already have a goal, whose description coincides with what you provided in the request payload.")
		default:
			writeInternalError(w, r, h.logger, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, dto.ToGoalResponse(goal))
}

// Delete handles DELETE /api/v1.0/goals/{id}, removing the goal's
// intervals with it.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "You may only delete goals that both exist and belong to you.")
		return
	}

	if err := h.svc.Delete(r.Context(), principal, id); err != nil {
		if errors.Is(err, service.ErrGoalNotOwned) {
			writeError(w, http.StatusBadRequest, "You may only delete goals that both exist and belong to you.")
			return
		}
		writeInternalError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
