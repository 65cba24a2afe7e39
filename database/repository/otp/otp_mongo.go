package otp

import (
	"context"
	"fmt"
	"time"

	"bloodlink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOTPRepo implements OTPRepository using MongoDB.
type MongoOTPRepo struct {
	coll *mongo.Collection
}

// NewMongoOTPRepo creates a new OTPRepository backed by MongoDB.
func NewMongoOTPRepo(client *mongo.Client, dbName string) OTPRepository {
	coll := client.Database(dbName).Collection("otp_challenges")
	repo := &MongoOTPRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create otp indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOTPRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func keyFilter(phoneNumber, email string) bson.M {
	return bson.M{"phone_number": phoneNumber, "email": email}
}

// GetByKey retrieves the challenge for a (phone, email) pair.
func (r *MongoOTPRepo) GetByKey(phoneNumber, email string) (*models.OTPChallenge, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var challenge models.OTPChallenge
	if err := r.coll.FindOne(ctx, keyFilter(phoneNumber, email)).Decode(&challenge); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch otp challenge: %w", err)
	}
	return &challenge, nil
}

// Replace upserts the challenge, overwriting any previous state for the key.
func (r *MongoOTPRepo) Replace(c *models.OTPChallenge) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, keyFilter(c.PhoneNumber, c.Email), c, opts); err != nil {
		return fmt.Errorf("failed to save otp challenge: %w", err)
	}
	return nil
}

// IncrementAttempts bumps the attempt counter with an atomic $inc and
// returns the post-increment document.
func (r *MongoOTPRepo) IncrementAttempts(phoneNumber, email string) (*models.OTPChallenge, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$inc": bson.M{"attempts": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var challenge models.OTPChallenge
	if err := r.coll.FindOneAndUpdate(ctx, keyFilter(phoneNumber, email), update, opts).Decode(&challenge); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to increment otp attempts: %w", err)
	}
	return &challenge, nil
}

// MarkVerified sets verified=true on the challenge.
func (r *MongoOTPRepo) MarkVerified(phoneNumber, email string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"verified": true}}
	if _, err := r.coll.UpdateOne(ctx, keyFilter(phoneNumber, email), update); err != nil {
		return fmt.Errorf("failed to mark otp challenge verified: %w", err)
	}
	return nil
}

// Delete removes the challenge for a key.
func (r *MongoOTPRepo) Delete(phoneNumber, email string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, keyFilter(phoneNumber, email)); err != nil {
		return fmt.Errorf("failed to delete otp challenge: %w", err)
	}
	return nil
}
