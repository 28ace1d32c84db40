package queries

import (
	"context"
	"time"

	"rental-listings/internal/infra"
	"rental-listings/internal/pkg/clock"
	"rental-listings/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReviewNotFound = errs.New("review not found")

type ReviewFilters struct {
	MinRating *int
	MaxRating *int
}

type CanReviewResult struct {
	CanReview bool   `json:"can_review"`
	Reason    string `json:"reason,omitempty"`
}

const (
	ReasonNoCompletedStay = "no_completed_stay"
	ReasonAlreadyReviewed = "already_reviewed"
)

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	FindByListingFirstPage(ctx context.Context, listingID uuid.UUID, limit int32, minRating, maxRating *int) ([]*ReviewListItem, error)
	FindByListingKeyset(ctx context.Context, listingID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32, minRating, maxRating *int) ([]*ReviewListItem, error)
	HasCompletedApprovedStay(ctx context.Context, tenantID, listingID uuid.UUID, now time.Time) (bool, error)
	HasReview(ctx context.Context, tenantID, listingID uuid.UUID) (bool, error)
	GetListingRatingStats(ctx context.Context, listingID uuid.UUID) (*ListingRatingStats, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByListing(ctx context.Context, listingID uuid.UUID, filters ReviewFilters, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error)
	CanReview(ctx context.Context, tenantID, listingID uuid.UUID) (*CanReviewResult, error)
	GetListingRatingStats(ctx context.Context, listingID uuid.UUID) (*ListingRatingStats, error)
}

type reviewQueriesImpl struct {
	repo  ReviewReadStore
	clock clock.Clock
}

func NewReviewQueries(repo ReviewReadStore, clk clock.Clock) ReviewQueries {
	return &reviewQueriesImpl{repo: repo, clock: clk}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *reviewQueriesImpl) ListByListing(ctx context.Context, listingID uuid.UUID, filters ReviewFilters, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*ReviewListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByListingFirstPage(ctx, listingID, int32(limit+1), filters.MinRating, filters.MaxRating)
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByListingKeyset(ctx, listingID, lastCreatedAt, lastID, int32(limit+1), filters.MinRating, filters.MaxRating)
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

// CanReview mirrors the write-side eligibility gate so clients can show
// or hide the review form without attempting a create.
func (q *reviewQueriesImpl) CanReview(ctx context.Context, tenantID, listingID uuid.UUID) (*CanReviewResult, error) {
	stayed, err := q.repo.HasCompletedApprovedStay(ctx, tenantID, listingID, q.clock.Now())
	if err != nil {
		return nil, err
	}
	if !stayed {
		return &CanReviewResult{CanReview: false, Reason: ReasonNoCompletedStay}, nil
	}

	reviewed, err := q.repo.HasReview(ctx, tenantID, listingID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return &CanReviewResult{CanReview: false, Reason: ReasonAlreadyReviewed}, nil
	}

	return &CanReviewResult{CanReview: true}, nil
}

func (q *reviewQueriesImpl) GetListingRatingStats(ctx context.Context, listingID uuid.UUID) (*ListingRatingStats, error) {
	return q.repo.GetListingRatingStats(ctx, listingID)
}
