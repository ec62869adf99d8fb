package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"insightflow/internal/http/views"
	"insightflow/internal/models"
	memoryslotrepo "insightflow/internal/repositories/memory/slot"
	"insightflow/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	args := m.Called(status, page, data)
	w.WriteHeader(status)
	return args.Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *mockUsers) Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func withSession(t *testing.T, slots session.SlotRepository) (context.Context, *session.Store) {
	t.Helper()

	s, err := session.Open(context.Background(), newTestLogger(), slots, "sid")
	require.NoError(t, err)
	return session.WithStore(context.Background(), s), s
}

func formRequest(ctx context.Context, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(ctx)
}

func TestLogin_PersistsOnlyID(t *testing.T) {
	t.Parallel()

	slots := memoryslotrepo.New()
	ctx, store := withSession(t, slots)

	users := new(mockUsers)
	users.On("Login", mock.Anything, models.LoginRequest{Email: "ana@x.io", Password: "pw"}).
		Return(&models.LoginResponse{ID: "u-1"}, nil)

	w := httptest.NewRecorder()
	req := formRequest(ctx, "/login", url.Values{"email": {" ana@x.io "}, "password": {"pw"}})

	Login(ctx, newTestLogger(), w, req, users, new(mockRenderer))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/user", w.Header().Get("Location"))
	assert.Equal(t, "u-1", store.UserID())

	persisted, err := slots.Get(context.Background(), session.Key("sid", session.SlotUserID))
	require.NoError(t, err)
	assert.Equal(t, "u-1", persisted)
	users.AssertExpectations(t)
}

func TestLogin_Failure(t *testing.T) {
	t.Parallel()

	ctx, store := withSession(t, memoryslotrepo.New())

	users := new(mockUsers)
	users.On("Login", mock.Anything, mock.Anything).
		Return(nil, &models.APIError{Kind: models.KindMessage, StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"})

	rd := new(mockRenderer)
	rd.On("Render", http.StatusUnauthorized, views.PageLogin, mock.MatchedBy(func(p views.LoginPage) bool {
		return p.Error == "Invalid credentials" && p.Email == "ana@x.io"
	})).Return(nil)

	w := httptest.NewRecorder()
	req := formRequest(ctx, "/login", url.Values{"email": {"ana@x.io"}, "password": {"bad"}})

	Login(ctx, newTestLogger(), w, req, users, rd)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, store.IsAuthenticated())
	rd.AssertExpectations(t)
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	ctx, _ := withSession(t, memoryslotrepo.New())

	users := new(mockUsers)
	rd := new(mockRenderer)
	rd.On("Render", http.StatusBadRequest, views.PageLogin, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	Login(ctx, newTestLogger(), w, formRequest(ctx, "/login", url.Values{"email": {"ana@x.io"}}), users, rd)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	users.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLoginForm_RedirectsWhenLoggedIn(t *testing.T) {
	t.Parallel()

	slots := memoryslotrepo.New()
	require.NoError(t, slots.Set(context.Background(), session.Key("sid", session.SlotUserID), "u-1"))
	ctx, _ := withSession(t, slots)

	w := httptest.NewRecorder()
	LoginForm(ctx, newTestLogger(), w, httptest.NewRequest(http.MethodGet, "/login", nil), new(mockRenderer))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/user", w.Header().Get("Location"))
}

func TestRegister_ThenLogsIn(t *testing.T) {
	t.Parallel()

	ctx, store := withSession(t, memoryslotrepo.New())

	users := new(mockUsers)
	users.On("Register", mock.Anything, mock.MatchedBy(func(req models.CreateUserRequest) bool {
		return req.Username == "ana" && req.Email == "ana@x.io" && req.Password == "pw"
	})).Return(&models.User{ID: "u-1"}, nil).Once()
	users.On("Login", mock.Anything, models.LoginRequest{Email: "ana@x.io", Password: "pw"}).
		Return(&models.LoginResponse{ID: "u-1"}, nil).Once()

	w := httptest.NewRecorder()
	req := formRequest(ctx, "/register", url.Values{
		"username":  {"ana"},
		"firstName": {"Ana"},
		"lastName":  {"Diaz"},
		"email":     {"ana@x.io"},
		"password":  {"pw"},
	})

	Register(ctx, newTestLogger(), w, req, users, new(mockRenderer))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/user", w.Header().Get("Location"))
	assert.Equal(t, "u-1", store.UserID())
	users.AssertExpectations(t)
}

func TestRegister_ServerRejects(t *testing.T) {
	t.Parallel()

	ctx, store := withSession(t, memoryslotrepo.New())

	users := new(mockUsers)
	users.On("Register", mock.Anything, mock.Anything).
		Return(nil, &models.APIError{Kind: models.KindFallback, StatusCode: http.StatusInternalServerError, Message: "registration failed on the server"})

	rd := new(mockRenderer)
	rd.On("Render", http.StatusBadGateway, views.PageRegister, mock.MatchedBy(func(p views.RegisterPage) bool {
		return p.Error == "registration failed on the server" && p.Form.Password == "" && p.Form.Username == "ana"
	})).Return(nil)

	w := httptest.NewRecorder()
	req := formRequest(ctx, "/register", url.Values{"username": {"ana"}, "email": {"ana@x.io"}, "password": {"pw"}})

	Register(ctx, newTestLogger(), w, req, users, rd)

	assert.False(t, store.IsAuthenticated())
	users.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	rd.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	slots := memoryslotrepo.New()
	require.NoError(t, slots.Set(context.Background(), session.Key("sid", session.SlotUserID), "u-1"))
	ctx, store := withSession(t, slots)

	w := httptest.NewRecorder()
	Logout(ctx, newTestLogger(), w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, store.IsAuthenticated())

	_, err := slots.Get(context.Background(), session.Key("sid", session.SlotUserID))
	assert.ErrorIs(t, err, models.ErrSlotNotFound)
}
