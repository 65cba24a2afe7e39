package credential

import (
	"fmt"
	"time"

	"bloodlink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoHospitalRepo implements HospitalRepository using MongoDB.
type MongoHospitalRepo struct {
	coll *mongo.Collection
}

// NewMongoHospitalRepo creates a new HospitalRepository backed by MongoDB.
func NewMongoHospitalRepo(client *mongo.Client, dbName string) HospitalRepository {
	coll := client.Database(dbName).Collection("hospitals")
	repo := &MongoHospitalRepo{coll: coll}
	if err := ensureCredentialIndexes(coll); err != nil {
		fmt.Printf("failed to create hospital indexes: %v\n", err)
	}
	return repo
}

// GetByEmail retrieves a hospital by email. Returns nil without error
// when no document matches.
func (r *MongoHospitalRepo) GetByEmail(email string) (*models.Hospital, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var hospital models.Hospital
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&hospital); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hospital with email %s: %w", email, err)
	}
	return &hospital, nil
}

// GetByID retrieves a hospital by its unique ID.
func (r *MongoHospitalRepo) GetByID(id string) (*models.Hospital, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var hospital models.Hospital
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&hospital); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hospital with id %s: %w", id, err)
	}
	return &hospital, nil
}

// Create inserts a new hospital record.
func (r *MongoHospitalRepo) Create(h *models.Hospital) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}
