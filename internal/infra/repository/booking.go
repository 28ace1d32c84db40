package repository

import (
	"context"

	"rental-listings/internal/domain/booking"
	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (id, listing_id, tenant_id, start_date, end_date, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(), b.ListingID(), b.TenantID(),
		b.Period().Start(), b.Period().End(), b.Status().String(),
	).Scan(&id)
	if err != nil {
		switch {
		case pgconv.IsExclusionViolation(err):
			return uuid.Nil, infra.WrapRepoErr("booking overlaps an approved stay", err, infra.KindConflict)
		case pgconv.IsForeignKeyViolation(err):
			return uuid.Nil, infra.WrapRepoErr("booking references missing listing or tenant", err, infra.KindForeignKeyViolated)
		default:
			return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
		}
	}
	return id, nil
}

const updateBookingStatusSQL = `
UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1
`

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL, id, status.String())
	if err != nil {
		if pgconv.IsExclusionViolation(err) {
			return infra.WrapRepoErr("approval overlaps an approved stay", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
