package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/homemenu/backend/internal/models"
	"github.com/homemenu/backend/pkg/logger"
)

const defaultRoomKeyPrefix = "rooms:"

// deleteIfUnchanged removes KEYS[1] only while it still holds ARGV[1], so a
// lazy expiry never deletes a room that was re-created in the meantime.
var deleteIfUnchanged = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// replaceIfUnchanged swaps an expired room for a new one in a single step.
var replaceIfUnchanged = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
	return 1
end
return 0
`)

// ttlGrace keeps a key alive slightly past its expiration date so the
// instant of expiry is still served and expiry itself is decided by Get.
const ttlGrace = time.Second

// RedisRoomStore keeps each room as a JSON value whose TTL ends at the
// room's expiration date.
type RedisRoomStore struct {
	Client *redis.Client
	Prefix string
	now    func() time.Time
}

func NewRedisRoomStore(client *redis.Client) *RedisRoomStore {
	return &RedisRoomStore{Client: client, Prefix: defaultRoomKeyPrefix, now: time.Now}
}

func (s *RedisRoomStore) key(code string) string {
	return s.Prefix + code
}

func (s *RedisRoomStore) Put(ctx context.Context, room models.Room) error {
	now := s.now()
	if room.IsExpired(now) {
		return fmt.Errorf("room %s already expired", room.RoomNumber)
	}
	ttl := room.ExpirationDate.Sub(now) + ttlGrace

	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("encoding room: %w", err)
	}

	key := s.key(room.RoomNumber)

	// A second SETNX covers a key that expired between SETNX and GET.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.Client.SetNX(ctx, key, data, ttl).Result()
		if err != nil {
			return unavailable("put room", err)
		}
		if ok {
			return nil
		}

		// The key may still hold a room that expired within the grace period.
		current, err := s.Client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return unavailable("put room", err)
		}
		var existing models.Room
		if err := json.Unmarshal(current, &existing); err != nil || !existing.IsExpired(now) {
			return ErrCollision
		}

		replaced, err := replaceIfUnchanged.Run(ctx, s.Client, []string{key}, current, data, ttl.Milliseconds()).Int()
		if err != nil {
			return unavailable("put room", err)
		}
		if replaced == 0 {
			return ErrCollision
		}
		return nil
	}
	return ErrCollision
}

func (s *RedisRoomStore) Get(ctx context.Context, code string) (*models.Room, error) {
	key := s.key(code)
	data, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get room", err)
	}

	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		logger.Warn("room_decode_failed", map[string]interface{}{
			"room_number": code,
			"error":       err.Error(),
		})
		return nil, ErrNotFound
	}

	if room.IsExpired(s.now()) {
		if err := deleteIfUnchanged.Run(ctx, s.Client, []string{key}, data).Err(); err != nil {
			return nil, unavailable("delete expired room", err)
		}
		return nil, ErrNotFound
	}
	return &room, nil
}

func (s *RedisRoomStore) Delete(ctx context.Context, code string) error {
	if err := s.Client.Del(ctx, s.key(code)).Err(); err != nil {
		return unavailable("delete room", err)
	}
	return nil
}

// DeleteExpired has nothing to do: Redis evicts rooms when their TTL ends.
func (s *RedisRoomStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
