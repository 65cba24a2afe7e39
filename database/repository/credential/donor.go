package credential

import (
	"fmt"
	"time"

	"bloodlink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDonorRepo implements DonorRepository using MongoDB.
type MongoDonorRepo struct {
	coll *mongo.Collection
}

// NewMongoDonorRepo creates a new DonorRepository backed by MongoDB.
func NewMongoDonorRepo(client *mongo.Client, dbName string) DonorRepository {
	coll := client.Database(dbName).Collection("donors")
	repo := &MongoDonorRepo{coll: coll}
	if err := ensureCredentialIndexes(coll); err != nil {
		fmt.Printf("failed to create donor indexes: %v\n", err)
	}
	return repo
}

// GetByEmail retrieves a donor by email. Returns nil without error when
// no document matches.
func (r *MongoDonorRepo) GetByEmail(email string) (*models.Donor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var donor models.Donor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&donor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch donor with email %s: %w", email, err)
	}
	return &donor, nil
}

// GetByID retrieves a donor by its unique ID.
func (r *MongoDonorRepo) GetByID(id string) (*models.Donor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var donor models.Donor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&donor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch donor with id %s: %w", id, err)
	}
	return &donor, nil
}

// Create inserts a new donor record.
func (r *MongoDonorRepo) Create(d *models.Donor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to create donor: %w", err)
	}
	return nil
}

// GetAll retrieves every donor record.
func (r *MongoDonorRepo) GetAll() ([]models.Donor, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve donors: %w", err)
	}
	defer cursor.Close(ctx)

	var donors []models.Donor
	for cursor.Next(ctx) {
		var d models.Donor
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode donor: %w", err)
		}
		donors = append(donors, d)
	}
	return donors, nil
}
