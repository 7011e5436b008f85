package submit

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"applixy/internal/domain"
)

type DocumentWriter interface {
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)
}

type IdentityProvider interface {
	SignIn(ctx context.Context) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, listing *domain.Listing) error
	Close() error
}
