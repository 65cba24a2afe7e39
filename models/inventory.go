package models

import "time"

// InventoryUnit tracks the stock of one blood type at a facility.
type InventoryUnit struct {
	ID         string    `bson:"id" json:"id"`
	FacilityID string    `bson:"facility_id" json:"facilityId"`
	BloodType  string    `bson:"blood_type" json:"bloodType"`
	Units      int       `bson:"units" json:"units"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}
