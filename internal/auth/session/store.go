package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/catatanku/catatan-backend/internal/auth/domain"
)

const (
	sessionKeyPrefix  = "auth:session:" // Session data: auth:session:{token}
	userSessionPrefix = "auth:user:"    // Set of tokens for a user: auth:user:{user_id}
	eventChannelFmt   = "auth:events:"  // Pub/Sub channel for auth-state changes: auth:events:{user_id}
	sessionTTL        = 24 * time.Hour
)

// Auth-state event names published on the per-user channel.
const (
	EventSignedIn  = "signed_in"
	EventSignedOut = "signed_out"
)

// Event is broadcast on a user's channel whenever their auth state changes,
// so long-lived views (SSE subscribers) observe sign-outs triggered elsewhere.
type Event struct {
	Event  string    `json:"event"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// Store keeps sessions in Redis with a TTL and broadcasts auth-state changes
// over Pub/Sub.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Create issues a new session for the user and publishes a signed_in event.
func (s *Store) Create(ctx context.Context, userID, email string) (*domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	sess := &domain.Session{
		Token:     token,
		UserID:    userID,
		Email:     email,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	sessionKey := s.sessionKey(token)
	userKey := s.userKey(userID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey, data, sessionTTL)
	pipe.SAdd(ctx, userKey, token)
	pipe.Expire(ctx, userKey, sessionTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.publish(ctx, userID, EventSignedIn)

	return sess, nil
}

// Get resolves a token to its session. Expired sessions disappear via TTL and
// resolve to domain.ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &sess, nil
}

// Revoke destroys a session and publishes a signed_out event for its user.
// Revoking an unknown token is a no-op.
func (s *Store) Revoke(ctx context.Context, token string) error {
	sess, err := s.Get(ctx, token)
	if err == domain.ErrSessionNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.sessionKey(token))
	pipe.SRem(ctx, s.userKey(sess.UserID), token)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.publish(ctx, sess.UserID, EventSignedOut)

	return nil
}

// Subscribe opens a Pub/Sub subscription to a user's auth-state channel.
// The caller must Close the returned PubSub when the view is torn down.
func (s *Store) Subscribe(ctx context.Context, userID string) *redis.PubSub {
	return s.client.Subscribe(ctx, s.eventChannel(userID))
}

func (s *Store) publish(ctx context.Context, userID, event string) {
	data, err := json.Marshal(Event{Event: event, UserID: userID, At: time.Now().UTC()})
	if err != nil {
		return
	}
	s.client.Publish(ctx, s.eventChannel(userID), data)
}

func (s *Store) sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *Store) userKey(userID string) string {
	return userSessionPrefix + userID
}

func (s *Store) eventChannel(userID string) string {
	return eventChannelFmt + userID
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
