package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"legalvoice/internal/model"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a repository over an existing collection
func NewMongoRepository(coll *mongo.Collection) DocumentRepository {
	return &mongoRepository{coll: coll}
}

// Connect dials MongoDB, verifies the connection and returns the client
// together with a repository over database.collection. The caller disconnects
// the client on shutdown.
func Connect(ctx context.Context, uri, database, collection string) (*mongo.Client, DocumentRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, NewMongoRepository(client.Database(database).Collection(collection)), nil
}

// List returns every document in the collection
func (r *mongoRepository) List(ctx context.Context) ([]model.Document, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := []model.Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	return docs, nil
}

// GetByID retrieves a document by its ObjectID hex string
func (r *mongoRepository) GetByID(ctx context.Context, id string) (*model.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var doc model.Document
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &doc, nil
}
