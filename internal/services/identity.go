package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/homemenu/backend/pkg/logger"
)

type IdentityEventKind string

const (
	IdentityRegistered IdentityEventKind = "registered"
	IdentitySignedIn   IdentityEventKind = "signed_in"
)

type IdentityEvent struct {
	Kind     IdentityEventKind
	UserID   uuid.UUID
	Username string
}

const defaultSubscriptionBuffer = 16

// IdentityFeed fans out identity changes to subscribers. Publish never
// blocks: a subscriber whose buffer is full misses the event.
type IdentityFeed struct {
	mu     sync.Mutex
	subs   map[uint64]chan IdentityEvent
	nextID uint64
	buffer int
}

func NewIdentityFeed(buffer int) *IdentityFeed {
	if buffer < 1 {
		buffer = defaultSubscriptionBuffer
	}
	return &IdentityFeed{
		subs:   make(map[uint64]chan IdentityEvent),
		buffer: buffer,
	}
}

type Subscription struct {
	events <-chan IdentityEvent
	once   sync.Once
	cancel func()
}

// Events is closed once the subscription is cancelled.
func (s *Subscription) Events() <-chan IdentityEvent {
	return s.events
}

func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

func (f *IdentityFeed) Subscribe() *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan IdentityEvent, f.buffer)
	f.subs[id] = ch

	return &Subscription{
		events: ch,
		cancel: func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		},
	}
}

func (f *IdentityFeed) Publish(event IdentityEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, ch := range f.subs {
		select {
		case ch <- event:
		default:
			logger.WarnWithUser(event.UserID.String(), "identity_event_dropped", map[string]interface{}{
				"kind":         string(event.Kind),
				"subscription": id,
			})
		}
	}
}
