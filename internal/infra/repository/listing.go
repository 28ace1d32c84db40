package repository

import (
	"context"
	"time"

	"rental-listings/internal/domain/listing"
	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ListingRepository struct{}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{}
}

const createListingSQL = `
INSERT INTO listings (id, landlord_id, title, description, location, price_cents, rooms, housing_type, contact_info, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id
`

func (r *ListingRepository) Create(ctx context.Context, tx db.DBTX, l *listing.Listing) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createListingSQL,
		l.ID(), l.LandlordID(), l.Title(), l.Description(), l.Location(),
		l.PriceCents(), l.Rooms(), l.HousingType().String(), l.ContactInfo(), l.IsActive(),
	).Scan(&id)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("listing references missing landlord", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create listing", err)
	}
	return id, nil
}

const findListingByIDSQL = `
SELECT id, landlord_id, title, description, location, price_cents, rooms, housing_type, contact_info, is_active, created_at, updated_at
FROM listings
WHERE id = $1
`

func (r *ListingRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*listing.Listing, error) {
	var (
		listingID   uuid.UUID
		landlordID  uuid.UUID
		title       string
		description string
		location    string
		priceCents  int64
		rooms       int
		housingType string
		contactInfo string
		isActive    bool
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := tx.QueryRow(ctx, findListingByIDSQL, id).Scan(
		&listingID, &landlordID, &title, &description, &location,
		&priceCents, &rooms, &housingType, &contactInfo, &isActive,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing", err)
	}

	return listing.ReconstructListing(
		listingID, landlordID, title, description, location,
		priceCents, rooms, listing.HousingType(housingType), contactInfo, isActive,
		createdAt, updatedAt,
	), nil
}

const updateListingSQL = `
UPDATE listings
SET title = $2, description = $3, location = $4, price_cents = $5, rooms = $6,
    housing_type = $7, contact_info = $8, updated_at = now()
WHERE id = $1
`

func (r *ListingRepository) Update(ctx context.Context, tx db.DBTX, l *listing.Listing) error {
	tag, err := tx.Exec(ctx, updateListingSQL,
		l.ID(), l.Title(), l.Description(), l.Location(),
		l.PriceCents(), l.Rooms(), l.HousingType().String(), l.ContactInfo(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return nil
}

const setListingActiveSQL = `
UPDATE listings SET is_active = $2, updated_at = now() WHERE id = $1
`

func (r *ListingRepository) SetActive(ctx context.Context, tx db.DBTX, id uuid.UUID, active bool) error {
	tag, err := tx.Exec(ctx, setListingActiveSQL, id, active)
	if err != nil {
		return infra.WrapRepoErr("failed to toggle listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteListingSQL = `
DELETE FROM listings WHERE id = $1
`

func (r *ListingRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteListingSQL, id)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("listing has bookings", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to delete listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return nil
}
