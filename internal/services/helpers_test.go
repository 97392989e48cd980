package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/homemenu/backend/internal/database"
	"github.com/homemenu/backend/internal/models"
	"github.com/homemenu/backend/internal/store"
	"github.com/homemenu/backend/pkg/logger"
	"gorm.io/gorm"
)

var loggerOnce sync.Once

func setupLogger() {
	loggerOnce.Do(logger.Init)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	setupLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed migrating: %v", err)
	}
	return db
}

// sequenceGenerator hands out codes in order and repeats the last one.
type sequenceGenerator struct {
	mu    sync.Mutex
	codes []string
	calls int
}

func (g *sequenceGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.calls
	if i >= len(g.codes) {
		i = len(g.codes) - 1
	}
	g.calls++
	return g.codes[i], nil
}

type failingGenerator struct{}

func (failingGenerator) Generate() (string, error) {
	return "", errors.New("entropy exhausted")
}

type failingSnapshotStore struct{}

func (failingSnapshotStore) Put(context.Context, models.Menu) error {
	return fmt.Errorf("put snapshot: %w: connection refused", store.ErrUnavailable)
}

func (failingSnapshotStore) Get(context.Context, string) (*models.Menu, error) {
	return nil, fmt.Errorf("get snapshot: %w: connection refused", store.ErrUnavailable)
}

type failingRoomStore struct{}

func (failingRoomStore) Put(context.Context, models.Room) error {
	return fmt.Errorf("put room: %w: timeout", store.ErrUnavailable)
}

func (failingRoomStore) Get(context.Context, string) (*models.Room, error) {
	return nil, fmt.Errorf("get room: %w: timeout", store.ErrUnavailable)
}

func (failingRoomStore) Delete(context.Context, string) error {
	return fmt.Errorf("delete room: %w: timeout", store.ErrUnavailable)
}

func (failingRoomStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, fmt.Errorf("delete expired rooms: %w: timeout", store.ErrUnavailable)
}

func sampleMenu(owner string) models.Menu {
	menu := models.NewMenu(owner, "")
	menu.AddItem(models.NewMenuItem("Dumplings", "pork and chive", models.CategoryMeat))
	menu.AddItem(models.NewMenuItem("Borscht", "", models.CategorySoup))
	return menu
}
