package model

import "stagebook/shared/model"

const (
	TableName  = "concepts"
	EntityName = "concept"

	FieldID      = "id"
	FieldOwnerID = "owner_id"
)

// Concept is an artist's published offer template. Bookings copy its values, they never
// link to it live.
type Concept struct {
	ID               string `db:"id"`
	OwnerID          string `db:"owner_id"`
	Title            string `db:"title"`
	Description      string `db:"description"`
	Price            *int64 `db:"price"`
	ExpectedAudience int    `db:"expected_audience"`
	TechSpec         string `db:"tech_spec"`
	HospitalityRider string `db:"hospitality_rider"`
	model.Metadata
}
