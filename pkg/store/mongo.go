package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "boundlayout"
	DefaultCollection = "layouts"
)

// MongoStore keeps one document per run, keyed by run id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and uses database/collection, falling back
// to the defaults when empty.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoStore{client: client, coll: client.Database(database).Collection(collection)}, nil
}

func (s *MongoStore) Name() string { return "mongo" }

// Store upserts e under its run id.
func (s *MongoStore) Store(ctx context.Context, e *scene.Export) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": e.RunID}, e, options.Replace().SetUpsert(true))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "store layout %s", e.RunID)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, runID string) (*scene.Export, error) {
	var e scene.Export
	err := s.coll.FindOne(ctx, bson.M{"_id": runID}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(runID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "load layout %s", runID)
	}
	return &e, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
