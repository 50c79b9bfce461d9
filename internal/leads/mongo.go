package leads

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

const leadsCollection = "leads"

// MongoRepository is a Repository backed by a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a Mongo-backed lead repository and ensures the
// unique sparse index on reviewToken exists.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	coll := db.Collection(leadsCollection)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reviewToken", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "submittedAt", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("leads: create indexes: %w", err)
	}

	return &MongoRepository{coll: coll}, nil
}

// Create validates and inserts a new lead.
func (r *MongoRepository) Create(ctx context.Context, req *BookingRequest) (*Lead, error) {
	now := time.Now().UTC()
	lead := req.lead(now)
	if err := lead.validate(); err != nil {
		return nil, err
	}
	lead.ID = primitive.NewObjectID().Hex()

	if _, err := r.coll.InsertOne(ctx, lead); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateReviewToken
		}
		return nil, fmt.Errorf("leads: insert: %w", err)
	}
	return lead, nil
}

// GetByID retrieves a lead by its hex ID.
func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	var lead Lead
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("leads: find: %w", err)
	}
	return &lead, nil
}

// List returns leads matching the filter, newest first.
func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Source != "" {
		query["source"] = filter.Source
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("leads: list: %w", err)
	}
	defer cur.Close(ctx)

	leads := []*Lead{}
	if err := cur.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("leads: decode: %w", err)
	}
	return leads, nil
}

// Update applies staff edits and refreshes lastUpdated. Enum membership is
// re-validated on the merged record before the write.
func (r *MongoRepository) Update(ctx context.Context, id string, upd Update) (*Lead, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if upd.Status != nil {
		updated.Status = *upd.Status
	}
	if upd.Priority != nil {
		updated.Priority = *upd.Priority
	}
	if upd.EstimatedCost != nil {
		updated.EstimatedCost = *upd.EstimatedCost
	}
	if upd.Notes != nil {
		updated.Notes = *upd.Notes
	}
	updated.LastUpdated = time.Now().UTC()

	if err := updated.validate(); err != nil {
		return nil, err
	}

	set := bson.M{
		"status":      updated.Status,
		"priority":    updated.Priority,
		"lastUpdated": updated.LastUpdated,
	}
	if upd.EstimatedCost != nil {
		set["estimatedCost"] = updated.EstimatedCost
	}
	if upd.Notes != nil {
		set["notes"] = updated.Notes
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("leads: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrLeadNotFound
	}
	return &updated, nil
}

var _ Repository = (*MongoRepository)(nil)
var _ Repository = (*InMemoryRepository)(nil)
