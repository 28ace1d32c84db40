package readstore

import (
	"context"
	"time"

	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"
	"rental-listings/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingViewByIDSQL = `
SELECT b.id, b.listing_id, l.title, b.tenant_id, u.email,
       b.start_date, b.end_date, b.status, b.created_at, b.updated_at,
       l.landlord_id
FROM bookings b
JOIN listings l ON l.id = b.listing_id
JOIN users u ON u.id = b.tenant_id
WHERE b.id = $1
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, uuid.UUID, error) {
	var (
		view       queries.BookingView
		landlordID uuid.UUID
	)
	err := r.db.QueryRow(ctx, findBookingViewByIDSQL, id).Scan(
		&view.ID, &view.ListingID, &view.ListingTitle, &view.TenantID, &view.TenantEmail,
		&view.StartDate, &view.EndDate, &view.Status, &view.CreatedAt, &view.UpdatedAt,
		&landlordID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, uuid.Nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, uuid.Nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return &view, landlordID, nil
}

const bookingListSelectSQL = `
SELECT b.id, b.listing_id, l.title, b.start_date, b.end_date, b.status, b.created_at
FROM bookings b
JOIN listings l ON l.id = b.listing_id
`

const bookingsByTenantFirstPageSQL = bookingListSelectSQL + `
WHERE b.tenant_id = $1
  AND (($2 AND b.end_date >= $3) OR (NOT $2 AND b.end_date < $3))
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`

func (r *BookingReadStore) FindByTenantFirstPage(ctx context.Context, tenantID uuid.UUID, bucket queries.StayBucket, now time.Time, limit int32) ([]*queries.BookingListItem, error) {
	active := bucket == queries.BucketActive
	return r.queryListItems(ctx, bookingsByTenantFirstPageSQL,
		[]any{tenantID, active, now, limit}, "failed to list tenant bookings")
}

const bookingsByTenantKeysetSQL = bookingListSelectSQL + `
WHERE b.tenant_id = $1
  AND (($2 AND b.end_date >= $3) OR (NOT $2 AND b.end_date < $3))
  AND (b.created_at, b.id) < ($4, $5)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $6
`

func (r *BookingReadStore) FindByTenantKeyset(ctx context.Context, tenantID uuid.UUID, bucket queries.StayBucket, now time.Time, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	active := bucket == queries.BucketActive
	return r.queryListItems(ctx, bookingsByTenantKeysetSQL,
		[]any{tenantID, active, now, lastCreatedAt, lastID, limit}, "failed to list tenant bookings keyset")
}

const bookingsByListingFirstPageSQL = bookingListSelectSQL + `
WHERE b.listing_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2
`

func (r *BookingReadStore) FindByListingFirstPage(ctx context.Context, listingID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return r.queryListItems(ctx, bookingsByListingFirstPageSQL,
		[]any{listingID, limit}, "failed to list listing bookings")
}

const bookingsByListingKeysetSQL = bookingListSelectSQL + `
WHERE b.listing_id = $1 AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`

func (r *BookingReadStore) FindByListingKeyset(ctx context.Context, listingID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return r.queryListItems(ctx, bookingsByListingKeysetSQL,
		[]any{listingID, lastCreatedAt, lastID, limit}, "failed to list listing bookings keyset")
}

func (r *BookingReadStore) queryListItems(ctx context.Context, sql string, args []any, errMsg string) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.BookingListItem, error) {
		var item queries.BookingListItem
		scanErr := row.Scan(
			&item.ID, &item.ListingID, &item.ListingTitle,
			&item.StartDate, &item.EndDate, &item.Status, &item.CreatedAt,
		)
		return &item, scanErr
	})
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	return items, nil
}
