// Package session supplies the "current actor id" stamped into
// checkedOutBy/returnedBy/createdBy fields. The actor id is an opaque
// string; nothing here validates who the actor is.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNoSession = errors.New("session not found or expired")

type Session struct {
	ActorID   string `json:"aid"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type Store interface {
	Create(ctx context.Context, id, actorID string) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	RevokeAllForActor(ctx context.Context, actorID string) error
}

func newSession(actorID string, ttl time.Duration) Session {
	now := time.Now()
	return Session{
		ActorID:   actorID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}
