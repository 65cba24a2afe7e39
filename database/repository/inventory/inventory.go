package inventory

import (
	"context"
	"fmt"
	"time"

	"bloodlink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InventoryRepository persists per-facility blood stock levels.
type InventoryRepository interface {
	Upsert(u *models.InventoryUnit) error
	GetByFacility(facilityID string) ([]models.InventoryUnit, error)
}

// MongoInventoryRepo implements InventoryRepository using MongoDB.
type MongoInventoryRepo struct {
	coll *mongo.Collection
}

// NewMongoInventoryRepo creates a new InventoryRepository backed by MongoDB.
func NewMongoInventoryRepo(client *mongo.Client, dbName string) InventoryRepository {
	coll := client.Database(dbName).Collection("inventory")
	repo := &MongoInventoryRepo{coll: coll}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "facility_id", Value: 1}, {Key: "blood_type", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		fmt.Printf("failed to create inventory indexes: %v\n", err)
	}
	return repo
}

// Upsert writes the stock level for a (facility, blood type) pair.
func (r *MongoInventoryRepo) Upsert(u *models.InventoryUnit) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"facility_id": u.FacilityID, "blood_type": u.BloodType}
	update := bson.M{"$set": u}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert inventory: %w", err)
	}
	return nil
}

// GetByFacility retrieves all stock rows for a facility.
func (r *MongoInventoryRepo) GetByFacility(facilityID string) ([]models.InventoryUnit, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"facility_id": facilityID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var units []models.InventoryUnit
	for cursor.Next(ctx) {
		var u models.InventoryUnit
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode inventory unit: %w", err)
		}
		units = append(units, u)
	}
	return units, nil
}
