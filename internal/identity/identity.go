// Package identity is the boundary to the identity provider: something
// that yields a stable user identifier used to gate writes.
package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type Provider interface {
	// SignIn signs in if not already signed in and returns the stable
	// user identifier.
	SignIn(ctx context.Context) (string, error)
}

// Anonymous issues a process-stable anonymous identifier on first
// sign-in and returns the same one afterwards.
type Anonymous struct {
	once sync.Once
	id   string
}

func NewAnonymous() *Anonymous {
	return &Anonymous{}
}

func (a *Anonymous) SignIn(_ context.Context) (string, error) {
	a.once.Do(func() {
		a.id = uuid.NewString()
	})
	return a.id, nil
}
