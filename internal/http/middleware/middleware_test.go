package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"insightflow/internal/models"
	memoryslotrepo "insightflow/internal/repositories/memory/slot"
	"insightflow/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "sid"

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingSlots struct{}

func (failingSlots) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (failingSlots) Set(context.Context, string, string) error    { return errors.New("down") }
func (failingSlots) Del(context.Context, ...string) error         { return errors.New("down") }

func TestSession_IssuesCookieAndInjectsStore(t *testing.T) {
	var got *session.Store

	h := Session(newTestLogger(), memoryslotrepo.New(), SessionConfig{CookieName: cookieName})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			require.True(t, ok)
			got = s
		}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	require.NotNil(t, got)
	assert.Equal(t, cookies[0].Value, got.ID())
	assert.False(t, got.IsAuthenticated())
}

func TestSession_ReusesCookieAndRestoresIdentity(t *testing.T) {
	ctx := context.Background()
	slots := memoryslotrepo.New()
	sid := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	require.NoError(t, slots.Set(ctx, session.Key(sid, session.SlotUserID), "u-1"))

	h := Session(newTestLogger(), slots, SessionConfig{CookieName: cookieName})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "u-1", session.UserIDFromContext(r.Context()))
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Empty(t, w.Result().Cookies())
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	h := Session(newTestLogger(), memoryslotrepo.New(), SessionConfig{CookieName: cookieName})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "../../etc"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "../../etc", cookies[0].Value)
}

func TestSession_BackendFailure(t *testing.T) {
	var called bool
	h := Session(newTestLogger(), failingSlots{}, SessionConfig{CookieName: cookieName})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, called)
}

func TestSession_StoreClosedAfterRequest(t *testing.T) {
	var store *session.Store

	h := Session(newTestLogger(), memoryslotrepo.New(), SessionConfig{CookieName: cookieName})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, _ = session.FromContext(r.Context())
		}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, store)
	assert.ErrorIs(t, store.Login(context.Background(), "u-1"), models.ErrSessionClosed)
}

func TestAuth(t *testing.T) {
	ctx := context.Background()
	slots := memoryslotrepo.New()

	guarded := Auth(newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("no session", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("anonymous session", func(t *testing.T) {
		s, err := session.Open(ctx, newTestLogger(), slots, "anon")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, req.WithContext(session.WithStore(ctx, s)))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("logged in", func(t *testing.T) {
		require.NoError(t, slots.Set(ctx, session.Key("known", session.SlotUserID), "u-1"))
		s, err := session.Open(ctx, newTestLogger(), slots, "known")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, req.WithContext(session.WithStore(ctx, s)))

		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	h := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/documents", nil))

	requestID := w.Header().Get("X-Request-ID")
	assert.Len(t, requestID, 36)
	assert.Contains(t, buf.String(), "request_id="+requestID)
	assert.Contains(t, buf.String(), "status=201")
	assert.Contains(t, buf.String(), "path=/documents")
}
