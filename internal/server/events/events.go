// Package events delivers notifications about completed registrations to
// external sinks. Delivery is best-effort: callers log failures and move on.
package events

import (
	"context"
	"errors"
	"time"
)

// UserRegistered is emitted once a user has been stored and issued a token.
type UserRegistered struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev UserRegistered) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, UserRegistered) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev UserRegistered) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
