package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side validation, kept separate from the
// read-side query views (CQRS separation).

type ListingSnapshot struct {
	ID         uuid.UUID
	LandlordID uuid.UUID
	Title      string
	IsActive   bool
}

type BookingSnapshot struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	TenantID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Status    string
}

type ReviewSnapshot struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	ListingID uuid.UUID
	Rating    int
	Comment   string
}
