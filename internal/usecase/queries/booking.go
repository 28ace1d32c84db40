package queries

import (
	"context"
	"time"

	"rental-listings/internal/domain/user"
	"rental-listings/internal/infra"
	"rental-listings/internal/pkg/clock"
	"rental-listings/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
)

// StayBucket splits a tenant's bookings by whether the stay is over.
type StayBucket string

const (
	BucketActive StayBucket = "active"
	BucketPast   StayBucket = "past"
)

func ParseStayBucket(s string) (StayBucket, error) {
	if s == "" {
		return BucketActive, nil
	}
	switch StayBucket(s) {
	case BucketActive, BucketPast:
		return StayBucket(s), nil
	default:
		return "", errs.New("invalid stay bucket")
	}
}

type BookingReadStore interface {
	// FindByID also returns the owning landlord so callers can authorize.
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, uuid.UUID, error)
	FindByTenantFirstPage(ctx context.Context, tenantID uuid.UUID, bucket StayBucket, now time.Time, limit int32) ([]*BookingListItem, error)
	FindByTenantKeyset(ctx context.Context, tenantID uuid.UUID, bucket StayBucket, now time.Time, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByListingFirstPage(ctx context.Context, listingID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByListingKeyset(ctx context.Context, listingID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*BookingView, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, bucket StayBucket, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
	ListByListing(ctx context.Context, listingID uuid.UUID, landlordID uuid.UUID, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type ListingOwnership interface {
	ListingLandlordID(ctx context.Context, listingID uuid.UUID) (uuid.UUID, error)
}

type bookingQueriesImpl struct {
	repo      BookingReadStore
	ownership ListingOwnership
	clock     clock.Clock
}

func NewBookingQueries(repo BookingReadStore, ownership ListingOwnership, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{repo: repo, ownership: ownership, clock: clk}
}

// GetByID is restricted to the booking's tenant and the landlord who
// owns the listing.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*BookingView, error) {
	view, landlordID, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	switch actorRole {
	case user.RoleTenant:
		if view.TenantID != actorID {
			return nil, ErrBookingAccess
		}
	case user.RoleLandlord:
		if landlordID != actorID {
			return nil, ErrBookingAccess
		}
	default:
		return nil, ErrBookingAccess
	}

	return view, nil
}

func (q *bookingQueriesImpl) ListByTenant(ctx context.Context, tenantID uuid.UUID, bucket StayBucket, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	now := q.clock.Now()

	var rows []*BookingListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByTenantFirstPage(ctx, tenantID, bucket, now, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByTenantKeyset(ctx, tenantID, bucket, now, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	return paginateBookings(rows, limit)
}

func (q *bookingQueriesImpl) ListByListing(ctx context.Context, listingID uuid.UUID, landlordID uuid.UUID, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	ownerID, err := q.ownership.ListingLandlordID(ctx, listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrListingNotFound
		}
		return nil, nil, err
	}
	if ownerID != landlordID {
		return nil, nil, ErrBookingAccess
	}

	limit = ValidateLimit(limit)

	var rows []*BookingListItem
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByListingFirstPage(ctx, listingID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByListingKeyset(ctx, listingID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	return paginateBookings(rows, limit)
}

func paginateBookings(rows []*BookingListItem, limit int) ([]*BookingListItem, *Cursor, error) {
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
