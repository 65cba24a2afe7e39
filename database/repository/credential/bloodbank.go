package credential

import (
	"fmt"
	"time"

	"bloodlink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBloodBankRepo implements BloodBankRepository using MongoDB.
type MongoBloodBankRepo struct {
	coll *mongo.Collection
}

// NewMongoBloodBankRepo creates a new BloodBankRepository backed by MongoDB.
func NewMongoBloodBankRepo(client *mongo.Client, dbName string) BloodBankRepository {
	coll := client.Database(dbName).Collection("blood_banks")
	repo := &MongoBloodBankRepo{coll: coll}
	if err := ensureCredentialIndexes(coll); err != nil {
		fmt.Printf("failed to create blood bank indexes: %v\n", err)
	}
	return repo
}

// GetByEmail retrieves a blood bank by email. Returns nil without error
// when no document matches.
func (r *MongoBloodBankRepo) GetByEmail(email string) (*models.BloodBank, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var bank models.BloodBank
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&bank); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch blood bank with email %s: %w", email, err)
	}
	return &bank, nil
}

// GetByID retrieves a blood bank by its unique ID.
func (r *MongoBloodBankRepo) GetByID(id string) (*models.BloodBank, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var bank models.BloodBank
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bank); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch blood bank with id %s: %w", id, err)
	}
	return &bank, nil
}

// Create inserts a new blood bank record.
func (r *MongoBloodBankRepo) Create(b *models.BloodBank) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create blood bank: %w", err)
	}
	return nil
}
