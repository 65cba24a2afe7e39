package token

import (
	"context"
	"fmt"
	"time"

	"bloodlink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTokenRepo implements TokenRepository using MongoDB.
type MongoTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoTokenRepo creates a new TokenRepository backed by MongoDB.
func NewMongoTokenRepo(client *mongo.Client, dbName string) TokenRepository {
	coll := client.Database(dbName).Collection("tokens")
	repo := &MongoTokenRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create token indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTokenRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token_string", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Save upserts a ledger row keyed by the token string.
func (r *MongoTokenRepo) Save(t *models.StoredToken) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"token_string": t.TokenString}
	update := bson.M{"$set": t}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// GetByToken retrieves a row by token string.
func (r *MongoTokenRepo) GetByToken(tokenString string) (*models.StoredToken, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var stored models.StoredToken
	if err := r.coll.FindOne(ctx, bson.M{"token_string": tokenString}).Decode(&stored); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}
	return &stored, nil
}

// GetAllValid returns the owner's unrevoked, unexpired rows.
func (r *MongoTokenRepo) GetAllValid(ownerID string) ([]models.StoredToken, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "revoked": false, "expired": false}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tokens for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var tokens []models.StoredToken
	for cursor.Next(ctx) {
		var t models.StoredToken
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Revoke sets revoked=true on one row. Rows are never deleted on revoke.
func (r *MongoTokenRepo) Revoke(tokenString string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"revoked": true}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"token_string": tokenString}, update); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAllByOwner sets revoked=true on every row for the owner.
func (r *MongoTokenRepo) RevokeAllByOwner(ownerID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"revoked": true}}
	if _, err := r.coll.UpdateMany(ctx, bson.M{"owner_id": ownerID}, update); err != nil {
		return fmt.Errorf("failed to revoke tokens for owner %s: %w", ownerID, err)
	}
	return nil
}

// MarkExpired sets expired=true on one row. Updating a missing row is a
// no-op, not an error; the annotation is best-effort.
func (r *MongoTokenRepo) MarkExpired(tokenString string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"expired": true}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"token_string": tokenString}, update); err != nil {
		return fmt.Errorf("failed to mark token expired: %w", err)
	}
	return nil
}

// DeleteLegacy removes rows whose correlation_id is missing or empty.
func (r *MongoTokenRepo) DeleteLegacy() (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"correlation_id": bson.M{"$exists": false}},
		{"correlation_id": ""},
	}}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete legacy tokens: %w", err)
	}
	return res.DeletedCount, nil
}
