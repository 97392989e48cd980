package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/homemenu/backend/internal/config"
)

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: server.Addr()})
	if err != nil {
		t.Fatalf("NewRedisClient returned error: %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, _ := server.Get("k"); got != "v" {
		t.Errorf("expected value in miniredis, got %q", got)
	}
}

func TestNewRedisClientUnreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	if _, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: addr}); err == nil {
		t.Fatal("expected error for unreachable redis")
	}
}
