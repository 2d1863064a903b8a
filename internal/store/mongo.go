package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wandaazhar007/backend-kansha-2026/internal/config"
)

var (
	connectOnce  sync.Once
	sharedClient *mongo.Client
	connectErr   error
)

// Connect establishes the process-wide Mongo client. The client is
// created at most once per process lifetime and reused across all
// requests; subsequent calls return the same handle.
func Connect(ctx context.Context, conf config.Mongo) (*mongo.Client, error) {
	connectOnce.Do(func() {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URI))
		if err != nil {
			connectErr = fmt.Errorf("failed to open document store connection: %w", err)
			return
		}
		if err := client.Ping(ctx, nil); err != nil {
			connectErr = fmt.Errorf("failed to ping document store: %w", err)
			return
		}
		sharedClient = client
	})
	return sharedClient, connectErr
}

// StartMongo connects to the document store, runs pending migrations and
// returns the Store backed by the configured database.
func StartMongo(ctx context.Context, conf config.Mongo) (Store, error) {
	client, err := Connect(ctx, conf)
	if err != nil {
		slog.Error("failed to initialize document store connection", slog.Any("err", err))
		return nil, err
	}
	slog.Info("document store connection done")

	if err := RunMigrations(client, conf.Database); err != nil {
		slog.Error("failed to run migrations", slog.Any("err", err))
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("document store migration done")

	return NewMongoStore(client.Database(conf.Database)), nil
}

// RunMigrations applies the index migrations from the migrations directory.
func RunMigrations(client *mongo.Client, databaseName string) error {
	driver, err := mongodb.WithInstance(client, &mongodb.Config{DatabaseName: databaseName})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		databaseName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// MongoStore implements Store on a MongoDB database.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a Store backed by the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// Collection returns the CRUD facade for the named collection.
func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{col: s.db.Collection(name)}
}

type mongoCollection struct {
	col *mongo.Collection
}

func (c *mongoCollection) List(ctx context.Context, filter *Filter) ([]Document, error) {
	match := bson.M{}
	if filter != nil {
		match[filter.Field] = filter.Value
	}

	cur, err := c.col.Find(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", c.col.Name(), err)
	}
	defer cur.Close(ctx)

	var docs []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

func (c *mongoCollection) Get(ctx context.Context, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var raw bson.M
	err = c.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	return fromBSON(raw), nil
}

func (c *mongoCollection) Add(ctx context.Context, fields Document) (string, error) {
	doc := cloneDocument(fields)
	delete(doc, "id")
	now := timestamp()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	res, err := c.col.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (c *mongoCollection) Update(ctx context.Context, id string, patch Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	// Existence check before mutation, so a write to a missing id
	// reports not-found instead of upserting or silently matching zero
	// documents.
	err = c.col.FindOne(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	set := bson.M(cloneDocument(patch))
	delete(set, "id")
	set["updatedAt"] = timestamp()

	if _, err := c.col.UpdateByID(ctx, oid, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (c *mongoCollection) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// fromBSON converts a decoded document into a Document, replacing the
// raw _id with its hex form under the "id" key.
func fromBSON(raw bson.M) Document {
	doc := make(Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				doc["id"] = oid.Hex()
				continue
			}
		}
		if arr, ok := v.(primitive.A); ok {
			doc[k] = []any(arr)
			continue
		}
		doc[k] = v
	}
	return doc
}
