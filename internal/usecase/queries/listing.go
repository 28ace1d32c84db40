package queries

import (
	"context"
	"time"

	"rental-listings/internal/infra"
	"rental-listings/internal/pkg/clock"
	"rental-listings/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound = errs.New("listing not found")
	ErrInvalidSort     = errs.New("invalid sort order")
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortNewest, nil
	}
	switch Sort(s) {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return Sort(s), nil
	default:
		return "", ErrInvalidSort
	}
}

type SearchFilters struct {
	Keyword       *string
	Location      *string
	MinPriceCents *int64
	MaxPriceCents *int64
	MinRooms      *int
	MaxRooms      *int
	HousingType   *string
	Sort          Sort
}

type ListingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	SearchFirstPage(ctx context.Context, filters SearchFilters, limit int32) ([]*ListingListItem, error)
	SearchKeyset(ctx context.Context, filters SearchFilters, lastKey int64, lastID uuid.UUID, limit int32) ([]*ListingListItem, error)
	FindByLandlordFirstPage(ctx context.Context, landlordID uuid.UUID, limit int32) ([]*ListingListItem, error)
	FindByLandlordKeyset(ctx context.Context, landlordID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ListingListItem, error)
}

// ListingViewRecorder persists one view-history record per viewer,
// listing and calendar day. Repeat views within a day are no-ops.
type ListingViewRecorder interface {
	RecordView(ctx context.Context, viewerID, listingID uuid.UUID, viewedOn time.Time) error
}

type ListingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	RecordView(ctx context.Context, viewerID, listingID uuid.UUID) error
	Search(ctx context.Context, filters SearchFilters, cursor *Cursor, limit int) ([]*ListingListItem, *Cursor, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID, cursor *Cursor, limit int) ([]*ListingListItem, *Cursor, error)
}

type listingQueriesImpl struct {
	repo  ListingReadStore
	views ListingViewRecorder
	clock clock.Clock
}

func NewListingQueries(repo ListingReadStore, views ListingViewRecorder, clk clock.Clock) ListingQueries {
	return &listingQueriesImpl{repo: repo, views: views, clock: clk}
}

func (q *listingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return view, nil
}

// RecordView notes that a signed-in user looked at a listing today.
// At most one record per user, listing and day; repeats are ignored.
func (q *listingQueriesImpl) RecordView(ctx context.Context, viewerID, listingID uuid.UUID) error {
	return q.views.RecordView(ctx, viewerID, listingID, clock.Today(q.clock))
}

// Search pages through active listings with keyset pagination. The
// cursor's key slot carries the creation time for newest ordering and
// the price for price orderings; it is opaque to clients either way.
func (q *listingQueriesImpl) Search(ctx context.Context, filters SearchFilters, cursor *Cursor, limit int) ([]*ListingListItem, *Cursor, error) {
	if filters.Sort == "" {
		filters.Sort = SortNewest
	}
	limit = ValidateLimit(limit)

	var rows []*ListingListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.SearchFirstPage(ctx, filters, int32(limit+1))
	} else {
		lastKeyTime, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.SearchKeyset(ctx, filters, lastKeyTime.UnixMicro(), lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(time.UnixMicro(q.sortKey(filters.Sort, last)), last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *listingQueriesImpl) sortKey(sort Sort, item *ListingListItem) int64 {
	switch sort {
	case SortPriceAsc, SortPriceDesc:
		return item.PriceCents
	default:
		return item.CreatedAt.UnixMicro()
	}
}

func (q *listingQueriesImpl) ListByLandlord(ctx context.Context, landlordID uuid.UUID, cursor *Cursor, limit int) ([]*ListingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*ListingListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByLandlordFirstPage(ctx, landlordID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByLandlordKeyset(ctx, landlordID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
