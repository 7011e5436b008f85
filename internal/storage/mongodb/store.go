// Package mongodb implements the remote document store boundary on
// MongoDB: point reads, full-collection fetches ordered by creation
// time, writes with a store-assigned timestamp, and live snapshot
// subscriptions backed by change streams.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"applixy/internal/domain"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

func Connect(ctx context.Context, uri, database string, logger *slog.Logger) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping store: %w", err)
	}

	logger.Info("connected to document store", "database", database)

	return &Store{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Get performs a point read by document id.
func (s *Store) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("invalid document id %q: %w", id, err)
	}

	var raw bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if err != nil {
		return domain.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	return toDocument(raw), nil
}

// FetchAll returns every document in the collection, newest first by
// the store-assigned timestamp field.
func (s *Store) FetchAll(ctx context.Context, collection string) ([]domain.Document, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var docs []domain.Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", collection, err)
		}
		docs = append(docs, toDocument(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", collection, err)
	}

	return docs, nil
}

// Insert writes a new document and returns its store-assigned id. The
// creation timestamp is attached here; callers never set it.
func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	payload := make(bson.M, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["timestamp"] = time.Now().UTC()

	res, err := s.db.Collection(collection).InsertOne(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}

	id := documentID(res.InsertedID)
	s.logger.Debug("document inserted", "collection", collection, "id", id)
	return id, nil
}

func toDocument(raw bson.M) domain.Document {
	doc := domain.Document{Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		if k == "_id" {
			doc.ID = documentID(v)
			continue
		}
		doc.Fields[k] = normalize(v)
	}
	return doc
}

func documentID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// normalize converts driver-specific value types into the plain shapes
// the mapping layer understands.
func normalize(v any) any {
	switch val := v.(type) {
	case primitive.A:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = normalize(item)
		}
		return items
	case primitive.DateTime:
		return val.Time()
	case bson.M:
		fields := make(map[string]any, len(val))
		for k, item := range val {
			fields[k] = normalize(item)
		}
		return fields
	default:
		return v
	}
}
