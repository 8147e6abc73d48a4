package httpserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/leopar/marketplace/internal/events"
	"github.com/leopar/marketplace/internal/models"
	"github.com/leopar/marketplace/internal/repo"
	"github.com/leopar/marketplace/internal/service"
	"github.com/leopar/marketplace/internal/session"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Repo     *repo.GormRepo
	Sessions *session.Manager
	Auth     *AuthHTTP
	Admin    *AdminHTTP
	Catalog  *CatalogHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := repo.New(db)
	sessions := session.NewManager(client, time.Duration(0))
	producer := events.NewProducer("")

	authSvc := &service.AuthService{Repo: store, Sessions: sessions, Producer: producer}
	catalogSvc := &service.CatalogService{Repo: store, Producer: producer}

	return &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Repo:     store,
		Sessions: sessions,
		Auth:     &AuthHTTP{Svc: authSvc, Sessions: sessions},
		Admin:    &AdminHTTP{Catalog: catalogSvc, Sessions: sessions},
		Catalog:  &CatalogHTTP{Catalog: catalogSvc},
	}
}

func (env *testEnv) doFormRequest(method, target string, form url.Values, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

// sessionCookieFor opens a session directly against the manager, the way
// a login would, and returns the cookie a browser would send back.
func (env *testEnv) sessionCookieFor(userID uint, isAdmin bool) *http.Cookie {
	token, err := env.Sessions.Create(env.T.Context(), userID, isAdmin)
	if err != nil {
		env.T.Fatalf("failed to create session: %v", err)
	}
	return &http.Cookie{Name: SessionCookie, Value: token, Path: "/"}
}
