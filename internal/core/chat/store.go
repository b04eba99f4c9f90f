package chat

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"weatherdash.app/internal/core/reactive"
)

type State struct {
	Messages []Message
	Loading  bool
}

// Store holds an append-only conversation.
type Store struct {
	mu        sync.RWMutex
	state     State
	now       func() time.Time
	entropy   io.Reader
	lastStamp int64
	version   uint64
	observers reactive.Observers[State]
}

type StoreOption func(*Store)

// WithClock replaces the wall clock used to stamp messages.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		state:   State{Messages: []Message{}},
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Messages() []Message {
	return s.State().Messages
}

// AddMessage appends a message with a fresh id and timestamp.
// Timestamps strictly increase within a store, so ids never collide.
func (s *Store) AddMessage(role Role, content string) (Message, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return Message{}, err
	}

	s.mu.Lock()
	stamp := s.now().UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	s.lastStamp = stamp

	id, err := ulid.New(uint64(stamp), s.entropy)
	if err != nil {
		s.mu.Unlock()
		return Message{}, err
	}

	msg := Message{ID: id.String(), Role: role, Content: content, Timestamp: stamp}
	s.state.Messages = append(s.state.Messages, msg)
	s.version++
	ver, snap := s.version, s.state.clone()
	s.mu.Unlock()

	s.observers.PublishVersion(ver, snap)
	return msg, nil
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.version++
	ver, snap := s.version, s.state.clone()
	s.mu.Unlock()

	s.observers.PublishVersion(ver, snap)
}

// ClearMessages empties the conversation.
func (s *Store) ClearMessages() {
	s.mu.Lock()
	s.state.Messages = []Message{}
	s.version++
	ver, snap := s.version, s.state.clone()
	s.mu.Unlock()

	s.observers.PublishVersion(ver, snap)
}

func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.observers.Subscribe(fn)
}

func (s *Store) Close() {
	s.observers.Close()
}

func (st State) clone() State {
	out := st
	out.Messages = append(make([]Message, 0, len(st.Messages)), st.Messages...)
	return out
}
