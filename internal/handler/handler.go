// Package handler implements the HTTP layer of the goal tracker API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kaloyan-marinov/goal-tracker/internal/handler/dto"
	"github.com/kaloyan-marinov/goal-tracker/internal/middleware"
)

// APIPrefix is the base path all resource routes are mounted under.
const APIPrefix = "/api/v1.0"

const msgContentType = `Your request did not include a "Content-Type: application/json" header.`

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError writes the uniform error payload: the reason phrase of the
// status code plus a human-readable message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: http.StatusText(status), Message: message})
}

// decodeJSON parses the request body into dst. The Content-Type header must
// declare application/json; anything else is treated the same as an absent
// or unparseable body.
func decodeJSON(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	if mt, _, _ := strings.Cut(ct, ";"); strings.TrimSpace(mt) != "application/json" {
		return errors.New("content type is not application/json")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// typeErrorField returns the JSON field name when err reports a value of
// the wrong type, and "" for every other decode failure. Handlers use it
// to respond about the offending field rather than the body as a whole.
func typeErrorField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	return ""
}

// urlParamID extracts a numeric path parameter. Routes constrain the
// parameter to digits, so failures only occur on overflow.
func urlParamID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// NotFound handles requests to unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "The requested resource was not found.")
}

// MethodNotAllowed handles requests with unsupported methods.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
}

// logError records a request-scoped internal failure before the handler
// responds with a sanitized 500.
func logError(logger *slog.Logger, r *http.Request, err error) {
	logger.Error("request failed",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
}

// writeInternalError responds with a 500 without leaking the cause.
func writeInternalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logError(logger, r, err)
	writeError(w, http.StatusInternalServerError, "An internal error occurred.")
}
