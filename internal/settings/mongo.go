package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	smtpCollection    = "smtp_settings"
	contactCollection = "contact_info"

	// Both collections hold a single well-known document so that reads
	// never need a query and saves are plain upserts.
	smtpDocID    = "smtp"
	contactDocID = "contact"
)

// MongoStore is a Store backed by MongoDB.
type MongoStore struct {
	smtp    *mongo.Collection
	contact *mongo.Collection
}

// NewMongoStore creates a Mongo-backed settings store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		smtp:    db.Collection(smtpCollection),
		contact: db.Collection(contactCollection),
	}
}

// ActiveSMTP returns the active SMTP settings record, or ErrNotConfigured
// when none exists or it is marked inactive.
func (s *MongoStore) ActiveSMTP(ctx context.Context) (*SMTPSettings, error) {
	var cfg SMTPSettings
	err := s.smtp.FindOne(ctx, bson.M{"_id": smtpDocID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("settings: find smtp: %w", err)
	}
	if !cfg.Active {
		return nil, ErrNotConfigured
	}
	return &cfg, nil
}

// SaveSMTP validates and upserts the SMTP settings record.
func (s *MongoStore) SaveSMTP(ctx context.Context, cfg *SMTPSettings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	copied := *cfg
	copied.ID = smtpDocID
	copied.UpdatedAt = time.Now().UTC()

	_, err := s.smtp.ReplaceOne(ctx, bson.M{"_id": smtpDocID}, copied, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("settings: save smtp: %w", err)
	}
	return nil
}

// Contact returns the stored contact record; nil when none has been saved.
func (s *MongoStore) Contact(ctx context.Context) (*ContactInfo, error) {
	var info ContactInfo
	err := s.contact.FindOne(ctx, bson.M{"_id": contactDocID}).Decode(&info)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: find contact: %w", err)
	}
	return &info, nil
}

// SaveContact upserts the contact record.
func (s *MongoStore) SaveContact(ctx context.Context, c *ContactInfo) error {
	copied := *c
	copied.ID = contactDocID
	copied.UpdatedAt = time.Now().UTC()

	_, err := s.contact.ReplaceOne(ctx, bson.M{"_id": contactDocID}, copied, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("settings: save contact: %w", err)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
var _ Store = (*InMemoryStore)(nil)
