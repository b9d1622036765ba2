// Package session keeps form state between requests of one browser session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spec-kit/event-registration/internal/form"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Store persists form snapshots by session id for a bounded time.
type Store interface {
	Load(ctx context.Context, id string) (form.Snapshot, error)
	Save(ctx context.Context, id string, snap form.Snapshot) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one issued by NewID.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func encode(snap form.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (form.Snapshot, error) {
	var snap form.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return form.Snapshot{}, fmt.Errorf("decode session: %w", err)
	}
	return snap, nil
}
