package store

import (
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/homemenu/backend/internal/database"
	"github.com/homemenu/backend/pkg/logger"
	"gorm.io/gorm"
)

var loggerOnce sync.Once

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	loggerOnce.Do(logger.Init)

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

// fakeClock is a settable time source. Listeners observe every forward
// move so external servers (miniredis) can follow along.
type fakeClock struct {
	mu        sync.Mutex
	now       time.Time
	listeners []func(time.Duration)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	delta := t.Sub(c.now)
	c.now = t
	listeners := c.listeners
	c.mu.Unlock()

	if delta > 0 {
		for _, fn := range listeners {
			fn(delta)
		}
	}
}

func (c *fakeClock) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}

func (c *fakeClock) onAdvance(fn func(time.Duration)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}
