package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leopar/marketplace/internal/logging"
	"github.com/leopar/marketplace/internal/repo"
	"github.com/leopar/marketplace/internal/service"
	"github.com/leopar/marketplace/internal/session"
)

type AuthHTTP struct {
	Svc        *service.AuthService
	Sessions   *session.Manager
	SessionTTL time.Duration
}

// currentSession resolves the cookie-delivered token. A missing or
// unknown token yields the anonymous session; only a store outage errors.
func (h *AuthHTTP) currentSession(c echo.Context) (session.Session, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return session.Session{}, nil
	}
	return h.Sessions.Resolve(c.Request().Context(), cookie.Value)
}

func (h *AuthHTTP) Home(c echo.Context) error {
	sess, err := h.currentSession(c)
	if err != nil {
		return c.String(http.StatusInternalServerError, "internal error")
	}
	return renderPage(c, http.StatusOK, "home", homeData{LoggedIn: !sess.Anonymous()})
}

func (h *AuthHTTP) RegisterPage(c echo.Context) error {
	return renderPage(c, http.StatusOK, "register", formData{})
}

func (h *AuthHTTP) LoginPage(c echo.Context) error {
	return renderPage(c, http.StatusOK, "login", formData{})
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	email := c.FormValue("email")
	username := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		l.Warn("register_error", "status", 400, "reason", "missing fields")
		return renderPage(c, http.StatusBadRequest, "register", formData{Error: "email and password are required"})
	}

	res, err := h.Svc.Register(ctx, email, username, password)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return renderPage(c, http.StatusConflict, "register", formData{Error: "email already used"})
		}
		l.Error("register_error", "status", 500, "error", err)
		return c.String(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(NewSessionCookie(res.Token, h.SessionTTL))
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	email := c.FormValue("email")
	password := c.FormValue("password")

	res, err := h.Svc.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			return renderPage(c, http.StatusUnauthorized, "login", formData{Error: "invalid credentials"})
		}
		l.Error("login_error", "status", 500, "error", err)
		return c.String(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(NewSessionCookie(res.Token, h.SessionTTL))
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Error("logout_error", "status", 500, "error", err)
			c.SetCookie(DeleteSessionCookie())
			return c.String(http.StatusInternalServerError, "internal error")
		}
	}

	c.SetCookie(DeleteSessionCookie())
	return c.Redirect(http.StatusFound, "/login")
}
