package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kaloyan-marinov/goal-tracker/internal/auth"
	"github.com/kaloyan-marinov/goal-tracker/internal/model"
	"github.com/kaloyan-marinov/goal-tracker/internal/service"
)

var errNotStubbed = errors.New("not stubbed")

type stubUserService struct {
	registerFn    func(ctx context.Context, email, password string) (*model.User, error)
	getFn         func(ctx context.Context, id int64) (*model.User, error)
	listFn        func(ctx context.Context) ([]*model.User, error)
	updateEmailFn func(ctx context.Context, principal *model.User, id int64, email string) (*model.User, error)
	deleteFn      func(ctx context.Context, principal *model.User, id int64) error
}

func (s *stubUserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if s.registerFn == nil {
		return nil, errNotStubbed
	}
	return s.registerFn(ctx, email, password)
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if s.getFn == nil {
		return nil, errNotStubbed
	}
	return s.getFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	if s.listFn == nil {
		return nil, errNotStubbed
	}
	return s.listFn(ctx)
}

func (s *stubUserService) UpdateEmail(ctx context.Context, principal *model.User, id int64, email string) (*model.User, error) {
	if s.updateEmailFn == nil {
		return nil, errNotStubbed
	}
	return s.updateEmailFn(ctx, principal, id, email)
}

func (s *stubUserService) Delete(ctx context.Context, principal *model.User, id int64) error {
	if s.deleteFn == nil {
		return errNotStubbed
	}
	return s.deleteFn(ctx, principal, id)
}

type stubGoalService struct {
	createFn func(ctx context.Context, principal *model.User, description string) (*model.Goal, error)
	getFn    func(ctx context.Context, principal *model.User, id int64) (*model.Goal, error)
	listFn   func(ctx context.Context, principal *model.User) ([]*model.Goal, error)
	updateFn func(ctx context.Context, principal *model.User, id int64, description *string) (*model.Goal, error)
	deleteFn func(ctx context.Context, principal *model.User, id int64) error
}

func (s *stubGoalService) Create(ctx context.Context, principal *model.User, description string) (*model.Goal, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, principal, description)
}

func (s *stubGoalService) Get(ctx context.Context, principal *model.User, id int64) (*model.Goal, error) {
	if s.getFn == nil {
		return nil, errNotStubbed
	}
	return s.getFn(ctx, principal, id)
}

func (s *stubGoalService) List(ctx context.Context, principal *model.User) ([]*model.Goal, error) {
	if s.listFn == nil {
		return nil, errNotStubbed
	}
	return s.listFn(ctx, principal)
}

func (s *stubGoalService) Update(ctx context.Context, principal *model.User, id int64, description *string) (*model.Goal, error) {
	if s.updateFn == nil {
		return nil, errNotStubbed
	}
	return s.updateFn(ctx, principal, id, description)
}

func (s *stubGoalService) Delete(ctx context.Context, principal *model.User, id int64) error {
	if s.deleteFn == nil {
		return errNotStubbed
	}
	return s.deleteFn(ctx, principal, id)
}

type stubIntervalService struct {
	createFn func(ctx context.Context, principal *model.User, goalID int64, start, final time.Time) (*model.Interval, error)
	getFn    func(ctx context.Context, principal *model.User, id int64) (*model.Interval, error)
	listFn   func(ctx context.Context, principal *model.User, limit, offset int) ([]*model.Interval, int, error)
	updateFn func(ctx context.Context, principal *model.User, id int64, input service.UpdateIntervalInput) (*model.Interval, error)
	deleteFn func(ctx context.Context, principal *model.User, id int64) error
}

func (s *stubIntervalService) Create(ctx context.Context, principal *model.User, goalID int64, start, final time.Time) (*model.Interval, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, principal, goalID, start, final)
}

func (s *stubIntervalService) Get(ctx context.Context, principal *model.User, id int64) (*model.Interval, error) {
	if s.getFn == nil {
		return nil, errNotStubbed
	}
	return s.getFn(ctx, principal, id)
}

func (s *stubIntervalService) List(ctx context.Context, principal *model.User, limit, offset int) ([]*model.Interval, int, error) {
	if s.listFn == nil {
		return nil, 0, errNotStubbed
	}
	return s.listFn(ctx, principal, limit, offset)
}

func (s *stubIntervalService) Update(ctx context.Context, principal *model.User, id int64, input service.UpdateIntervalInput) (*model.Interval, error) {
	if s.updateFn == nil {
		return nil, errNotStubbed
	}
	return s.updateFn(ctx, principal, id, input)
}

func (s *stubIntervalService) Delete(ctx context.Context, principal *model.User, id int64) error {
	if s.deleteFn == nil {
		return errNotStubbed
	}
	return s.deleteFn(ctx, principal, id)
}

type stubIssuer struct {
	token string
	err   error
}

func (s *stubIssuer) Issue(userID int64) (string, error) {
	return s.token, s.err
}

// stubAuthStrategy resolves every request to a fixed principal, or fails
// when none is set.
type stubAuthStrategy struct {
	principal *model.User
}

func (s *stubAuthStrategy) Authenticate(_ *http.Request) (*model.User, error) {
	if s.principal == nil {
		return nil, auth.ErrUnauthenticated
	}
	return s.principal, nil
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error {
	return s.err
}

// testEnv bundles the stubbed collaborators behind one router.
type testEnv struct {
	users     *stubUserService
	goals     *stubGoalService
	intervals *stubIntervalService
	issuer    *stubIssuer
	principal *model.User
	db        *stubPinger
	cache     *stubPinger
}

func newTestRouter(env testEnv) http.Handler {
	if env.users == nil {
		env.users = &stubUserService{}
	}
	if env.goals == nil {
		env.goals = &stubGoalService{}
	}
	if env.intervals == nil {
		env.intervals = &stubIntervalService{}
	}
	if env.issuer == nil {
		env.issuer = &stubIssuer{}
	}
	if env.db == nil {
		env.db = &stubPinger{}
	}
	if env.cache == nil {
		env.cache = &stubPinger{}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	strategy := &stubAuthStrategy{principal: env.principal}

	return NewRouter(RouterConfig{
		Logger:           logger,
		Users:            NewUserHandler(env.users, logger),
		Tokens:           NewTokenHandler(env.issuer, logger),
		Goals:            NewGoalHandler(env.goals, logger),
		Intervals:        NewIntervalHandler(env.intervals, logger),
		Health:           NewHealthHandler(env.db, env.cache, logger),
		PasswordStrategy: strategy,
		TokenStrategy:    strategy,
	})
}

// doJSON performs a request against the router. A non-empty body is sent
// with a JSON content type.
func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a response body into a generic JSON document.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not a JSON object: %v\nbody: %s", err, rec.Body.String())
	}
	return doc
}

// assertError checks the uniform error payload.
func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, status, rec.Body.String())
	}
	doc := decodeBody(t, rec)
	if doc["error"] != http.StatusText(status) {
		t.Errorf("error = %q, want %q", doc["error"], http.StatusText(status))
	}
	if doc["message"] != message {
		t.Errorf("message = %q, want %q", doc["message"], message)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testEnv{})
	rec := doJSON(t, router, "GET", "/api/v1.0/nope", "")
	assertError(t, rec, http.StatusNotFound, "The requested resource was not found.")
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testEnv{})
	rec := doJSON(t, router, "PATCH", "/api/v1.0/users", "")
	assertError(t, rec, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
}

func TestRouter_UnauthenticatedRequest(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testEnv{}) // no principal
	rec := doJSON(t, router, "GET", "/api/v1.0/goals", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != `Bearer realm="Authentication Required"` {
		t.Errorf("WWW-Authenticate = %q", got)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testEnv{})
	rec := doJSON(t, router, "GET", "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		db, cache  error
		wantStatus int
	}{
		{name: "all up", wantStatus: http.StatusOK},
		{name: "postgres down", db: errors.New("conn refused"), wantStatus: http.StatusServiceUnavailable},
		{name: "redis down", cache: errors.New("conn refused"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(testEnv{
				db:    &stubPinger{err: tt.db},
				cache: &stubPinger{err: tt.cache},
			})
			rec := doJSON(t, router, "GET", "/readyz", "")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
