// Package mongo is the MongoDB document store, the default backend.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	repo "github.com/oksasatya/planify/internal/domain/repository"
)

const (
	usersCollection    = "users"
	projectsCollection = "projects"
	tasksCollection    = "tasks"
)

// Connect dials uri, pings the primary and ensures the indexes the repositories rely on.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(c, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	db := client.Database(dbName)
	if err := EnsureIndexes(c, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := db.Collection(projectsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "pinned", Value: -1}, {Key: "updatedAt", Value: -1}},
	}); err != nil {
		return err
	}
	_, err := db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "projectId", Value: 1}},
	})
	return err
}

// objectID parses a hex id. Malformed ids cannot match any document, so they are ErrNotFound.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repo.ErrNotFound
	}
	return oid, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repo.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repo.ErrDuplicate
	}
	return err
}

// now is truncated to milliseconds, the resolution BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
