package mongodb

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"applixy/internal/domain"
)

// Subscription is a live query against one collection. It emits a full
// snapshot immediately, then a fresh full snapshot after every change
// event — never an incremental diff. The channel closes on error or
// cancellation; Err reports what ended the stream.
type Subscription struct {
	snapshots chan []domain.Document
	cancel    context.CancelFunc

	mu  sync.Mutex
	err error
}

// Watch opens a change stream on the collection and starts delivering
// snapshots. The subscription must be closed when no longer needed or
// the underlying stream keeps consuming a connection.
func (s *Store) Watch(ctx context.Context, collection string) (*Subscription, error) {
	cs, err := s.db.Collection(collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", collection, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		snapshots: make(chan []domain.Document, 1),
		cancel:    cancel,
	}

	go sub.run(subCtx, s, cs, collection)

	s.logger.Info("subscription opened", "collection", collection)
	return sub, nil
}

// Snapshots returns the snapshot delivery channel.
func (sub *Subscription) Snapshots() <-chan []domain.Document {
	return sub.snapshots
}

// Err returns the error that terminated the stream, if any. Valid once
// the snapshot channel is closed.
func (sub *Subscription) Err() error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.err
}

// Close cancels the subscription and releases the change stream.
func (sub *Subscription) Close() {
	sub.cancel()
}

func (sub *Subscription) run(ctx context.Context, store *Store, cs *mongo.ChangeStream, collection string) {
	defer close(sub.snapshots)
	defer cs.Close(context.Background())

	if !sub.emit(ctx, store, collection) {
		return
	}

	for cs.Next(ctx) {
		if !sub.emit(ctx, store, collection) {
			return
		}
	}

	if err := cs.Err(); err != nil && ctx.Err() == nil {
		sub.setErr(fmt.Errorf("change stream on %s: %w", collection, err))
	}
}

func (sub *Subscription) emit(ctx context.Context, store *Store, collection string) bool {
	docs, err := store.FetchAll(ctx, collection)
	if err != nil {
		if ctx.Err() == nil {
			sub.setErr(err)
		}
		return false
	}

	select {
	case <-ctx.Done():
		return false
	case sub.snapshots <- docs:
		return true
	}
}

func (sub *Subscription) setErr(err error) {
	sub.mu.Lock()
	sub.err = err
	sub.mu.Unlock()
}
