// Package session holds the browser's session identity: a single opaque
// user id persisted in a durable slot, plus an optional bearer credential.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"insightflow/internal/models"
)

const pkg = "session/"

const (
	// SlotUserID is the fixed slot name holding the user id.
	SlotUserID = "userId"
	// SlotToken holds an optional bearer credential.
	SlotToken = "token"
)

type Store struct {
	log   *slog.Logger
	slots SlotRepository
	sid   string

	mu     sync.RWMutex
	userID string
	token  string
	closed bool
}

// Open reads the durable slots of the browser session sid once and returns
// the initialized store.
func Open(ctx context.Context, log *slog.Logger, slots SlotRepository, sid string) (*Store, error) {
	op := pkg + "Open"

	if sid == "" {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	s := &Store{
		log:   log.With(slog.String("sid", sid)),
		slots: slots,
		sid:   sid,
	}

	userID, err := s.read(ctx, SlotUserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.read(ctx, SlotToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.userID = userID
	s.token = token

	return s, nil
}

func (s *Store) read(ctx context.Context, name string) (string, error) {
	value, err := s.slots.Get(ctx, Key(s.sid, name))
	if err != nil {
		if errors.Is(err, models.ErrSlotNotFound) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Key is the slot key of name inside the browser session sid.
func Key(sid, name string) string {
	return sid + ":" + name
}

// ID returns the browser session id.
func (s *Store) ID() string {
	return s.sid
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Store) IsAuthenticated() bool {
	return s.UserID() != ""
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Login persists userID and then makes it current.
func (s *Store) Login(ctx context.Context, userID string) error {
	op := pkg + "Login"

	log := s.log.With(slog.String("op", op))

	if userID == "" {
		return fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("%s: %w", op, models.ErrSessionClosed)
	}

	if err := s.slots.Set(ctx, Key(s.sid, SlotUserID), userID); err != nil {
		log.Error("failed to persist user id", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.userID = userID

	log.Debug("session logged in")

	return nil
}

// Logout clears the persisted identity and then the in-memory one.
func (s *Store) Logout(ctx context.Context) error {
	op := pkg + "Logout"

	log := s.log.With(slog.String("op", op))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("%s: %w", op, models.ErrSessionClosed)
	}

	if err := s.slots.Del(ctx, Key(s.sid, SlotUserID), Key(s.sid, SlotToken)); err != nil {
		log.Error("failed to clear session slots", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.userID = ""
	s.token = ""

	log.Debug("session logged out")

	return nil
}

// Close ends the store's lifetime. Later Login and Logout calls fail with
// models.ErrSessionClosed; reads keep returning the last state.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

type storeContextKey struct{}

func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, s)
}

func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeContextKey{}).(*Store)
	return s, ok && s != nil
}

// UserIDFromContext returns the session user id, or "" without a session.
func UserIDFromContext(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.UserID()
	}
	return ""
}
