package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PlazzaA/entrename/internal/middleware"
	"github.com/PlazzaA/entrename/internal/telemetry/metrics"
	"github.com/PlazzaA/entrename/internal/users"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type alwaysAllowRateLimiter struct{}

func (l alwaysAllowRateLimiter) Allow(_ context.Context, _ string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	return &redis_rate.Result{Allowed: 1}, nil
}

type alwaysRejectRateLimiter struct{}

func (l alwaysRejectRateLimiter) Allow(_ context.Context, _ string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	return &redis_rate.Result{Allowed: 0, RetryAfter: time.Minute}, nil
}

type handlerTestSuite struct {
	repo     *MockusersRepo
	sessions *MockloginSessions
	manager  *metrics.Manager
	router   *mux.Router
}

func newHandlerTestSuite(t *testing.T, rateLimiter middleware.RequestRateLimiter) *handlerTestSuite {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	suite := &handlerTestSuite{
		repo:     NewMockusersRepo(ctrl),
		sessions: NewMockloginSessions(ctrl),
		manager:  metrics.NewTestManager(),
		router:   mux.NewRouter(),
	}

	handler := users.NewHandler(suite.repo, suite.sessions, suite.manager)
	handler.SetupRoutes(suite.router, rateLimiter, 5)

	return suite
}

func TestHandler_Register(t *testing.T) {
	suite := newHandlerTestSuite(t, alwaysAllowRateLimiter{})

	suite.repo.EXPECT().
		Create(gomock.Any(), users.CreateUserParams{
			FirstName: "Ana",
			LastName:  "Lifts",
			HeightCm:  170,
			WeightKg:  62.5,
			Email:     "ana@entrename.app",
			Password:  "sup3r-secret",
		}).
		Return(&users.User{
			ID:        1,
			FirstName: "Ana",
			LastName:  "Lifts",
			HeightCm:  170,
			WeightKg:  62.5,
			Email:     "ana@entrename.app",
		}, nil)

	req, err := http.NewRequest(
		"POST", "/a/register",
		strings.NewReader(`{
			"firstName": "Ana",
			"lastName": "Lifts",
			"heightCm": 170,
			"weightKg": 62.5,
			"email": "ana@entrename.app",
			"password": "sup3r-secret"
		}`),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var createdUser users.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &createdUser))
	assert.Equal(t, 1, createdUser.ID)
	assert.Equal(t, "ana@entrename.app", createdUser.Email)
	assert.NotContains(t, rr.Body.String(), "passwordHash")

	assert.Equal(t, float64(1), testutil.ToFloat64(suite.manager.CounterRegisteredUsers))
}

func TestHandler_Register_emailTaken(t *testing.T) {
	suite := newHandlerTestSuite(t, alwaysAllowRateLimiter{})

	suite.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, users.ErrEmailTaken)

	req, err := http.NewRequest(
		"POST", "/a/register",
		strings.NewReader(`{
			"firstName": "Ana",
			"lastName": "Lifts",
			"email": "ana@entrename.app",
			"password": "sup3r-secret"
		}`),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, float64(0), testutil.ToFloat64(suite.manager.CounterRegisteredUsers))
}

func TestHandler_Register_invalidRequest(t *testing.T) {
	testCases := map[string]struct {
		contentType string
		body        string
	}{
		"wrong content type": {
			contentType: "text/plain",
			body:        `{"email": "ana@entrename.app", "password": "pass"}`,
		},
		"broken json": {
			contentType: "application/json",
			body:        `{"email": `,
		},
		"empty email": {
			contentType: "application/json",
			body:        `{"firstName": "Ana", "lastName": "Lifts", "password": "pass"}`,
		},
		"empty password": {
			contentType: "application/json",
			body:        `{"firstName": "Ana", "lastName": "Lifts", "email": "ana@entrename.app"}`,
		},
		"empty names": {
			contentType: "application/json",
			body:        `{"email": "ana@entrename.app", "password": "pass"}`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			suite := newHandlerTestSuite(t, alwaysAllowRateLimiter{})

			req, err := http.NewRequest("POST", "/a/register", strings.NewReader(tc.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", tc.contentType)

			rr := httptest.NewRecorder()
			suite.router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	suite := newHandlerTestSuite(t, alwaysAllowRateLimiter{})

	suite.repo.EXPECT().
		Verify(gomock.Any(), "ana@entrename.app", "sup3r-secret").
		Return(&users.User{ID: 42, Email: "ana@entrename.app"}, nil)
	suite.sessions.EXPECT().
		Login(gomock.Any(), 42).
		Return("test-token-123", nil)

	req, err := http.NewRequest(
		"POST", "/a/login",
		strings.NewReader(`{"email": "ana@entrename.app", "password": "sup3r-secret"}`),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"token": "test-token-123"}`, rr.Body.String())
	assert.Equal(t, float64(1), testutil.ToFloat64(suite.manager.CounterLogins))
	assert.Equal(t, float64(0), testutil.ToFloat64(suite.manager.CounterFailedLogins))
}

func TestHandler_Login_formEncoded(t *testing.T) {
	suite := newHandlerTestSuite(t, alwaysAllowRateLimiter{})

	suite.repo.EXPECT().
		Verify(gomock.Any(), "ana@entrename.app", "sup3r-secret").
		Return(&users.User{ID: 42}, nil)
	suite.sessions.EXPECT().
		Login(gomock.Any(), 42).
		Return("test-token-123", nil)

	req, err := http.NewRequest(
		"POST", "/a/login",
		strings.NewReader("email=ana%40entrename.app&password=sup3r-secret"),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"token": "test-token-123"}`, rr.Body.String())
}

func TestHandler_Login_wrongCredentials(t *testing.T) {
	suite := newHandlerTestSuite(t, alwaysAllowRateLimiter{})

	suite.repo.EXPECT().
		Verify(gomock.Any(), "ana@entrename.app", "not-the-password").
		Return(nil, users.ErrInvalidCredentials)

	req, err := http.NewRequest(
		"POST", "/a/login",
		strings.NewReader(`{"email": "ana@entrename.app", "password": "not-the-password"}`),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "wrong credentials")
	assert.Equal(t, float64(0), testutil.ToFloat64(suite.manager.CounterLogins))
	assert.Equal(t, float64(1), testutil.ToFloat64(suite.manager.CounterFailedLogins))
}

func TestHandler_Login_rateLimited(t *testing.T) {
	suite := newHandlerTestSuite(t, alwaysRejectRateLimiter{})

	req, err := http.NewRequest(
		"POST", "/a/login",
		strings.NewReader(`{"email": "ana@entrename.app", "password": "sup3r-secret"}`),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(suite.manager.CounterRateLimitRejects))
}

func TestHandler_Logout(t *testing.T) {
	suite := newHandlerTestSuite(t, alwaysAllowRateLimiter{})

	suite.sessions.EXPECT().
		Logout(gomock.Any(), "test-token-123").
		Return(true, nil)

	req, err := http.NewRequest("GET", "/a/logout", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.AuthTokenHeader, "test-token-123")

	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "logged-out", rr.Body.String())
}

func TestHandler_Logout_noSession(t *testing.T) {
	testCases := map[string]struct {
		token      string
		expectCall bool
		loggedOut  bool
	}{
		"missing token": {
			token: "",
		},
		"unknown token": {
			token:      "expired-token",
			expectCall: true,
			loggedOut:  false,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			suite := newHandlerTestSuite(t, alwaysAllowRateLimiter{})

			if tc.expectCall {
				suite.sessions.EXPECT().
					Logout(gomock.Any(), tc.token).
					Return(tc.loggedOut, nil)
			}

			req, err := http.NewRequest("GET", "/a/logout", nil)
			require.NoError(t, err)
			if tc.token != "" {
				req.Header.Set(middleware.AuthTokenHeader, tc.token)
			}

			rr := httptest.NewRecorder()
			suite.router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}
