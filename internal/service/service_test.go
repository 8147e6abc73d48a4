package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/leopar/marketplace/internal/events"
	"github.com/leopar/marketplace/internal/models"
	"github.com/leopar/marketplace/internal/repo"
	"github.com/leopar/marketplace/internal/session"
)

type testEnv struct {
	Repo     *repo.GormRepo
	Sessions *session.Manager
	Auth     *AuthService
	Catalog  *CatalogService
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

	return &testEnv{
		Repo:     store,
		Sessions: sessions,
		Auth:     &AuthService{Repo: store, Sessions: sessions, Producer: producer},
		Catalog:  &CatalogService{Repo: store, Producer: producer},
	}
}
