package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaloyan-marinov/goal-tracker/internal/auth"
	"github.com/kaloyan-marinov/goal-tracker/internal/handler/dto"
	"github.com/kaloyan-marinov/goal-tracker/internal/model"
	"github.com/kaloyan-marinov/goal-tracker/internal/pagination"
	"github.com/kaloyan-marinov/goal-tracker/internal/service"
)

// Interval ownership failures all collapse into this one message so the
// endpoints cannot be used to enumerate which interval IDs exist.
const msgIntervalNotOwned = `Your user does not have a Goal resource that is associated with the provided "interval_id".`

const msgGoalNotOwned = `Your user does not have a Goal resource with the provided "goal_id".`

// IntervalService is the surface of the interval service the handler
// consumes.
type IntervalService interface {
	Create(ctx context.Context, principal *model.User, goalID int64, start, final time.Time) (*model.Interval, error)
	Get(ctx context.Context, principal *model.User, id int64) (*model.Interval, error)
	List(ctx context.Context, principal *model.User, limit, offset int) ([]*model.Interval, int, error)
	Update(ctx context.Context, principal *model.User, id int64, input service.UpdateIntervalInput) (*model.Interval, error)
	Delete(ctx context.Context, principal *model.User, id int64) error
}

// IntervalHandler serves the interval endpoints. All of them sit behind
// the token strategy.
type IntervalHandler struct {
	svc    IntervalService
	logger *slog.Logger
}

// NewIntervalHandler creates a new IntervalHandler.
func NewIntervalHandler(svc IntervalService, logger *slog.Logger) *IntervalHandler {
	return &IntervalHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1.0/intervals: one page of the principal's
// intervals wrapped in the pagination envelope.
func (h *IntervalHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())
	params := pagination.ParseQuery(r.URL.Query())

	intervals, total, err := h.svc.List(r.Context(), principal, params.Limit(), params.Offset())
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}

	items := make([]dto.IntervalResponse, 0, len(intervals))
	for _, i := range intervals {
		items = append(items, dto.ToIntervalResponse(i))
	}
	writeJSON(w, http.StatusOK, pagination.New(items, r.URL.Path, params, total))
}

// Get handles GET /api/v1.0/intervals/{id}.
func (h *IntervalHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgIntervalNotOwned)
		return
	}

	interval, err := h.svc.Get(r.Context(), principal, id)
	if err != nil {
		if errors.Is(err, service.ErrIntervalNotOwned) {
			writeError(w, http.StatusBadRequest, msgIntervalNotOwned)
			return
		}
		writeInternalError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToIntervalResponse(interval))
}

// Create handles POST /api/v1.0/intervals.
func (h *IntervalHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	var req dto.CreateIntervalRequest
	if err := decodeJSON(r, &req); err != nil {
		switch typeErrorField(err) {
		case "goal_id":
			writeError(w, http.StatusBadRequest, "The request body must include a goal_id, which must be an int.")
		case "start":
			writeError(w, http.StatusBadRequest, `"start" must match the format "YYYY-MM-DD HH:MM".`)
		case "final":
			writeError(w, http.StatusBadRequest, `"final" must match the format "YYYY-MM-DD HH:MM".`)
		default:
			writeError(w, http.StatusBadRequest, msgContentType)
		}
		return
	}
	if req.GoalID == nil {
		writeError(w, http.StatusBadRequest, "The request body must include a goal_id, which must be an int.")
		return
	}
	if req.Start == nil {
		writeError(w, http.StatusBadRequest, `The request body must include both a "start" timestamp.`)
		return
	}
	start, err := model.ParseTime(*req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, `"start" must match the format "YYYY-MM-DD HH:MM".`)
		return
	}
	if req.Final == nil {
		writeError(w, http.StatusBadRequest, `The request body must include both a "final" timestamp.`)
		return
	}
	final, err := model.ParseTime(*req.Final)
	if err != nil {
		writeError(w, http.StatusBadRequest, `"final" must match the format "YYYY-MM-DD HH:MM".`)
		return
	}

	interval, err := h.svc.Create(r.Context(), principal, *req.GoalID, start, final)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotOwned) {
			writeError(w, http.StatusBadRequest, msgGoalNotOwned)
			return
		}
		writeInternalError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/intervals/%d", APIPrefix, interval.ID))
	writeJSON(w, http.StatusCreated, dto.ToIntervalResponse(interval))
}

// Update handles PUT /api/v1.0/intervals/{id}. Omitted fields are left
// unchanged; a new goal_id must belong to the principal too.
func (h *IntervalHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgIntervalNotOwned)
		return
	}

	var req dto.UpdateIntervalRequest
	if err := decodeJSON(r, &req); err != nil {
		switch typeErrorField(err) {
		case "goal_id":
			writeError(w, http.StatusBadRequest, `If the request body includes "goal_id", it must be an integer.`)
		case "start":
			writeError(w, http.StatusBadRequest, `If provided, "start" must match the format "YYYY-MM-DD HH:MM".`)
		case "final":
			writeError(w, http.StatusBadRequest, `If provided, "final" must match the format "YYYY-MM-DD HH:MM".`)
		default:
			writeError(w, http.StatusBadRequest, msgContentType)
		}
		return
	}

	input := service.UpdateIntervalInput{GoalID: req.GoalID}
	if req.Start != nil {
		start, err := model.ParseTime(*req.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, `If provided, "start" must match the format "YYYY-MM-DD HH:MM".`)
			return
		}
		input.Start = &start
	}
	if req.Final != nil {
		final, err := model.ParseTime(*req.Final)
		if err != nil {
			writeError(w, http.StatusBadRequest, `If provided, "final" must match the format "YYYY-MM-DD HH:MM".`)
			return
		}
		input.Final = &final
	}

	interval, err := h.svc.Update(r.Context(), principal, id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIntervalNotOwned):
			writeError(w, http.StatusBadRequest, msgIntervalNotOwned)
		case errors.Is(err, service.ErrGoalNotOwned):
			writeError(w, http.StatusBadRequest, msgGoalNotOwned)
		default:
			writeInternalError(w, r, h.logger, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, dto.ToIntervalResponse(interval))
}

// Delete handles DELETE /api/v1.0/intervals/{id}.
func (h *IntervalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustPrincipalFromContext(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgIntervalNotOwned)
		return
	}

	if err := h.svc.Delete(r.Context(), principal, id); err != nil {
		if errors.Is(err, service.ErrIntervalNotOwned) {
			writeError(w, http.StatusBadRequest, msgIntervalNotOwned)
			return
		}
		writeInternalError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
