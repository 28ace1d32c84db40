package readstore

import (
	"context"
	"time"

	"rental-listings/internal/domain/booking"
	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"
	"rental-listings/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReadStore backs the write side's validation reads with minimal
// snapshots, separate from the richer query views.
type CommandReadStore struct {
	db      db.DBTX
	reviews *ReviewReadStore
}

func NewCommandReadStore(dbtx db.DBTX) *CommandReadStore {
	return &CommandReadStore{db: dbtx, reviews: NewReviewReadStore(dbtx)}
}

const listingSnapshotSQL = `
SELECT id, landlord_id, title, is_active FROM listings WHERE id = $1
`

func (r *CommandReadStore) ListingByID(ctx context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	var snap shared.ListingSnapshot
	err := r.db.QueryRow(ctx, listingSnapshotSQL, id).Scan(&snap.ID, &snap.LandlordID, &snap.Title, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read listing snapshot", err)
	}
	return &snap, nil
}

const bookingSnapshotSQL = `
SELECT id, listing_id, tenant_id, start_date, end_date, status FROM bookings WHERE id = $1
`

func (r *CommandReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	err := r.db.QueryRow(ctx, bookingSnapshotSQL, id).Scan(
		&snap.ID, &snap.ListingID, &snap.TenantID, &snap.StartDate, &snap.EndDate, &snap.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read booking snapshot", err)
	}
	return &snap, nil
}

const blockingPeriodsSQL = `
SELECT start_date, end_date FROM bookings
WHERE listing_id = $1 AND status IN ('pending', 'approved')
`

func (r *CommandReadStore) BlockingPeriods(ctx context.Context, listingID uuid.UUID) ([]booking.StayPeriod, error) {
	return r.queryPeriods(ctx, blockingPeriodsSQL, []any{listingID}, "failed to read blocking periods")
}

const approvedPeriodsSQL = `
SELECT start_date, end_date FROM bookings
WHERE listing_id = $1 AND status = 'approved' AND id <> $2
`

func (r *CommandReadStore) ApprovedPeriods(ctx context.Context, listingID, excludeBookingID uuid.UUID) ([]booking.StayPeriod, error) {
	return r.queryPeriods(ctx, approvedPeriodsSQL, []any{listingID, excludeBookingID}, "failed to read approved periods")
}

func (r *CommandReadStore) HasCompletedApprovedStay(ctx context.Context, tenantID, listingID uuid.UUID, now time.Time) (bool, error) {
	return r.reviews.HasCompletedApprovedStay(ctx, tenantID, listingID, now)
}

func (r *CommandReadStore) HasReview(ctx context.Context, tenantID, listingID uuid.UUID) (bool, error) {
	return r.reviews.HasReview(ctx, tenantID, listingID)
}

const reviewSnapshotSQL = `
SELECT id, tenant_id, listing_id, rating, comment FROM reviews WHERE id = $1
`

func (r *CommandReadStore) ReviewByID(ctx context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	var snap shared.ReviewSnapshot
	err := r.db.QueryRow(ctx, reviewSnapshotSQL, id).Scan(
		&snap.ID, &snap.TenantID, &snap.ListingID, &snap.Rating, &snap.Comment,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read review snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReadStore) queryPeriods(ctx context.Context, sql string, args []any, errMsg string) ([]booking.StayPeriod, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}

	periods, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (booking.StayPeriod, error) {
		var start, end time.Time
		if scanErr := row.Scan(&start, &end); scanErr != nil {
			return booking.StayPeriod{}, scanErr
		}
		return booking.ReconstructStayPeriod(start, end), nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	return periods, nil
}
