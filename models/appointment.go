package models

import "time"

// Appointment is a scheduled donation visit.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	DonorID     string    `bson:"donor_id" json:"donorId"`
	FacilityID  string    `bson:"facility_id" json:"facilityId"`
	ScheduledAt time.Time `bson:"scheduled_at" json:"scheduledAt"`
	Status      string    `bson:"status" json:"status"` // scheduled, completed, cancelled
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
