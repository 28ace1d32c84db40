package readstore

import (
	"context"
	"fmt"
	"time"

	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"
	"rental-listings/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

const findReviewViewByIDSQL = `
SELECT r.id, r.tenant_id, u.email, r.listing_id, r.rating, r.comment, r.created_at, r.updated_at
FROM reviews r
JOIN users u ON u.id = r.tenant_id
WHERE r.id = $1
`

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	var view queries.ReviewView
	err := r.db.QueryRow(ctx, findReviewViewByIDSQL, id).Scan(
		&view.ID, &view.TenantID, &view.TenantEmail, &view.ListingID,
		&view.Rating, &view.Comment, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review view", err)
	}
	return &view, nil
}

const reviewListSelectSQL = `
SELECT r.id, u.email, r.rating, r.comment, r.created_at
FROM reviews r
JOIN users u ON u.id = r.tenant_id
`

func (r *ReviewReadStore) FindByListingFirstPage(ctx context.Context, listingID uuid.UUID, limit int32, minRating, maxRating *int) ([]*queries.ReviewListItem, error) {
	where := "WHERE r.listing_id = $1"
	args := []any{listingID}
	where, args = appendRatingFilters(where, args, minRating, maxRating)

	sql := reviewListSelectSQL + where +
		fmt.Sprintf(" ORDER BY r.created_at DESC, r.id DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	return r.queryListItems(ctx, sql, args, "failed to list reviews")
}

func (r *ReviewReadStore) FindByListingKeyset(ctx context.Context, listingID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32, minRating, maxRating *int) ([]*queries.ReviewListItem, error) {
	where := "WHERE r.listing_id = $1"
	args := []any{listingID}
	where, args = appendRatingFilters(where, args, minRating, maxRating)

	where += fmt.Sprintf(" AND (r.created_at, r.id) < ($%d, $%d)", len(args)+1, len(args)+2)
	args = append(args, lastCreatedAt, lastID)

	sql := reviewListSelectSQL + where +
		fmt.Sprintf(" ORDER BY r.created_at DESC, r.id DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	return r.queryListItems(ctx, sql, args, "failed to list reviews keyset")
}

func appendRatingFilters(where string, args []any, minRating, maxRating *int) (string, []any) {
	if minRating != nil {
		args = append(args, *minRating)
		where += fmt.Sprintf(" AND r.rating >= $%d", len(args))
	}
	if maxRating != nil {
		args = append(args, *maxRating)
		where += fmt.Sprintf(" AND r.rating <= $%d", len(args))
	}
	return where, args
}

const hasCompletedApprovedStaySQL = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE tenant_id = $1 AND listing_id = $2 AND status = 'approved' AND end_date < $3
)
`

func (r *ReviewReadStore) HasCompletedApprovedStay(ctx context.Context, tenantID, listingID uuid.UUID, now time.Time) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, hasCompletedApprovedStaySQL, tenantID, listingID, now).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check completed stay", err)
	}
	return exists, nil
}

const hasReviewSQL = `
SELECT EXISTS (
    SELECT 1 FROM reviews WHERE tenant_id = $1 AND listing_id = $2
)
`

func (r *ReviewReadStore) HasReview(ctx context.Context, tenantID, listingID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, hasReviewSQL, tenantID, listingID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check existing review", err)
	}
	return exists, nil
}

const listingRatingStatsSQL = `
SELECT count(*)::int,
       COALESCE(avg(rating), 0)::float8,
       count(*) FILTER (WHERE rating = 1)::int,
       count(*) FILTER (WHERE rating = 2)::int,
       count(*) FILTER (WHERE rating = 3)::int,
       count(*) FILTER (WHERE rating = 4)::int,
       count(*) FILTER (WHERE rating = 5)::int
FROM reviews
WHERE listing_id = $1
`

func (r *ReviewReadStore) GetListingRatingStats(ctx context.Context, listingID uuid.UUID) (*queries.ListingRatingStats, error) {
	stats := queries.ListingRatingStats{ListingID: listingID}
	err := r.db.QueryRow(ctx, listingRatingStatsSQL, listingID).Scan(
		&stats.TotalReviews, &stats.AverageRating,
		&stats.RatingCounts[0], &stats.RatingCounts[1], &stats.RatingCounts[2],
		&stats.RatingCounts[3], &stats.RatingCounts[4],
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get rating stats", err)
	}
	return &stats, nil
}

func (r *ReviewReadStore) queryListItems(ctx context.Context, sql string, args []any, errMsg string) ([]*queries.ReviewListItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReviewListItem, error) {
		var item queries.ReviewListItem
		scanErr := row.Scan(&item.ID, &item.TenantEmail, &item.Rating, &item.Comment, &item.CreatedAt)
		return &item, scanErr
	})
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	return items, nil
}
