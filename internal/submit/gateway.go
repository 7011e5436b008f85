// Package submit packages new listings into documents and writes them
// to the remote store. Validation happens before any network call; the
// gateway never retries.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"applixy/internal/domain"
)

// ErrAuthRequired marks a write that could not be tied to a signed-in
// identity, even after the gateway's own sign-in attempt.
var ErrAuthRequired = errors.New("authentication required")

// ValidationError reports required form fields that were missing or
// empty. It is produced before any network call.
type ValidationError struct {
	Collection string
	Missing    []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission to %s missing required fields: %s",
		e.Collection, strings.Join(e.Missing, ", "))
}

// Required fields per target collection. Anything that is not the
// mentors collection is an opportunity listing, including user-chosen
// categories.
func requiredFields(collection string) []string {
	if collection == domain.CollectionMentors {
		return []string{"name", "specialty", "email"}
	}
	return []string{"name", "organization"}
}

type Gateway struct {
	writer    DocumentWriter
	identity  IdentityProvider
	publisher Publisher
	logger    *slog.Logger
}

// NewGateway wires the submission path. The publisher may be nil; the
// updates feed is then simply not notified.
func NewGateway(writer DocumentWriter, identity IdentityProvider, publisher Publisher, logger *slog.Logger) *Gateway {
	return &Gateway{
		writer:    writer,
		identity:  identity,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit validates the form fields, ensures a signed-in identity, and
// writes a new document to the collection. The store assigns the
// creation timestamp and the document id, which is returned. Retry on
// failure is the caller's responsibility.
func (g *Gateway) Submit(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := validate(collection, fields); err != nil {
		return "", err
	}

	uid, err := g.identity.SignIn(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthRequired, err)
	}

	id, err := g.writer.Insert(ctx, collection, fields)
	if err != nil {
		return "", fmt.Errorf("submit to %s: %w", collection, err)
	}

	if g.publisher != nil {
		listing := &domain.Listing{
			Collection:  collection,
			DocumentID:  id,
			SubmittedBy: uid,
		}
		if err := g.publisher.Publish(ctx, listing); err != nil {
			// The write already succeeded; a missed notification is
			// not a submission failure.
			g.logger.Error("failed to publish listing event", "collection", collection, "id", id, "error", err)
		}
	}

	g.logger.Info("listing submitted", "collection", collection, "id", id, "user", uid)
	return id, nil
}

func validate(collection string, fields map[string]any) error {
	var missing []string
	for _, name := range requiredFields(collection) {
		s, ok := fields[name].(string)
		if !ok || strings.TrimSpace(s) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Collection: collection, Missing: missing}
	}
	return nil
}
