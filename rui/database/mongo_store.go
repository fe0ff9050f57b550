package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// MongoStore keeps collections as documents keyed by collection name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

type mongoDocument struct {
	ID        string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = "rui"
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(dbName).Collection("documents"),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, c Collection) (Document, error) {
	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": string(c)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", c, err)
	}
	slog.Debug("Collection loaded",
		slog.String("type", "db"),
		slog.String("operation", "load"),
		slog.String("collection", string(c)),
		slog.String("backend", "mongo"))
	return Document(doc.Body), nil
}

func (s *MongoStore) Save(ctx context.Context, c Collection, doc Document) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": string(c)},
		mongoDocument{ID: string(c), Body: string(doc), UpdatedAt: time.Now().UTC()},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", c, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
