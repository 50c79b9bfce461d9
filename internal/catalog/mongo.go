package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const servicesCollection = "services"

// MongoRepository is a Repository backed by a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a Mongo-backed catalog repository and ensures
// the unique slug index exists.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	coll := db.Collection(servicesCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: create index: %w", err)
	}
	return &MongoRepository{coll: coll}, nil
}

// List returns catalog entries ordered by displayOrder then name.
func (r *MongoRepository) List(ctx context.Context, activeOnly bool) ([]*Service, error) {
	query := bson.M{}
	if activeOnly {
		query["active"] = true
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "name", Value: 1},
	})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	defer cur.Close(ctx)

	services := []*Service{}
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return services, nil
}

// GetBySlug returns the catalog entry with the given slug.
func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (*Service, error) {
	var svc Service
	err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: find: %w", err)
	}
	return &svc, nil
}

// Create validates and inserts a new catalog entry.
func (r *MongoRepository) Create(ctx context.Context, svc *Service) (*Service, error) {
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	copied := *svc
	copied.ID = primitive.NewObjectID().Hex()
	copied.CreatedAt = now
	copied.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, copied); err != nil {
		return nil, fmt.Errorf("catalog: insert: %w", err)
	}
	return &copied, nil
}

// Update replaces a catalog entry, preserving identity and creation time.
func (r *MongoRepository) Update(ctx context.Context, id string, svc *Service) (*Service, error) {
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	var existing Service
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: find: %w", err)
	}

	copied := *svc
	copied.ID = id
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = time.Now().UTC()

	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, copied); err != nil {
		return nil, fmt.Errorf("catalog: update: %w", err)
	}
	return &copied, nil
}

// Delete removes a catalog entry.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrServiceNotFound
	}
	return nil
}

var _ Repository = (*MongoRepository)(nil)
var _ Repository = (*InMemoryRepository)(nil)
