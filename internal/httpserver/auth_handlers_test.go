package httpserver

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func registerForm() url.Values {
	return url.Values{
		"email":    {"test@example.com"},
		"username": {"test_user"},
		"password": {"password"},
	}
}

func TestRegisterHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doFormRequest(http.MethodPost, "/register", registerForm())
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := findCookie(t, rec.Result().Cookies(), SessionCookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	// fresh registration yields a non-admin session
	sess, err := env.Sessions.Resolve(t.Context(), cookie.Value)
	require.NoError(t, err)
	require.False(t, sess.Anonymous())
	require.False(t, sess.IsAdmin)
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doFormRequest(http.MethodPost, "/register", registerForm())
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusFound, rec.Code)

	rec, c = env.doFormRequest(http.MethodPost, "/register", registerForm())
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "email already used")
	require.Empty(t, rec.Result().Cookies())
}

func TestRegisterHandlerMissingFields(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"email": {"test@example.com"}, "username": {"x"}}
	rec, c := env.doFormRequest(http.MethodPost, "/register", form)
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doFormRequest(http.MethodPost, "/register", registerForm())
	require.NoError(t, env.Auth.Register(c))

	form := url.Values{"email": {"test@example.com"}, "password": {"password"}}
	rec, c := env.doFormRequest(http.MethodPost, "/login", form)
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := findCookie(t, rec.Result().Cookies(), SessionCookie)
	sess, err := env.Sessions.Resolve(t.Context(), cookie.Value)
	require.NoError(t, err)
	require.False(t, sess.Anonymous())
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doFormRequest(http.MethodPost, "/register", registerForm())
	require.NoError(t, env.Auth.Register(c))

	// wrong password and unknown email produce the same page
	for _, form := range []url.Values{
		{"email": {"test@example.com"}, "password": {"wrong_password"}},
		{"email": {"nobody@example.com"}, "password": {"password"}},
	} {
		rec, c := env.doFormRequest(http.MethodPost, "/login", form)
		require.NoError(t, env.Auth.Login(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid credentials")
		require.Empty(t, rec.Result().Cookies())
	}
}

func TestLogoutHandler(t *testing.T) {
	env := newTestEnv(t)

	ck := env.sessionCookieFor(1, false)

	rec, c := env.doFormRequest(http.MethodGet, "/logout", nil, ck)
	require.NoError(t, env.Auth.Logout(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	cleared := findCookie(t, rec.Result().Cookies(), SessionCookie)
	require.Empty(t, cleared.Value)

	sess, err := env.Sessions.Resolve(t.Context(), ck.Value)
	require.NoError(t, err)
	require.True(t, sess.Anonymous())

	// logging out again is a no-op
	rec, c = env.doFormRequest(http.MethodGet, "/logout", nil, ck)
	require.NoError(t, env.Auth.Logout(c))
	require.Equal(t, http.StatusFound, rec.Code)
}

func TestHomePage(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doFormRequest(http.MethodGet, "/", nil)
	require.NoError(t, env.Auth.Home(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Welcome to LeoPar Marketplace!")
	require.Contains(t, rec.Body.String(), "/login")

	ck := env.sessionCookieFor(1, false)
	rec, c = env.doFormRequest(http.MethodGet, "/", nil, ck)
	require.NoError(t, env.Auth.Home(c))
	require.Contains(t, rec.Body.String(), "/logout")
}
