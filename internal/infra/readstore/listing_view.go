package readstore

import (
	"context"
	"time"

	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// ListingViewStore records listing detail views, one row per user,
// listing and calendar day.
type ListingViewStore struct {
	db db.DBTX
}

func NewListingViewStore(dbtx db.DBTX) *ListingViewStore {
	return &ListingViewStore{db: dbtx}
}

const recordListingViewSQL = `
INSERT INTO listing_views (user_id, listing_id, viewed_on)
VALUES ($1, $2, $3)
ON CONFLICT ON CONSTRAINT listing_views_once_per_day DO NOTHING
`

func (r *ListingViewStore) RecordView(ctx context.Context, viewerID, listingID uuid.UUID, viewedOn time.Time) error {
	_, err := r.db.Exec(ctx, recordListingViewSQL, viewerID, listingID, viewedOn)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("listing view references missing row", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to record listing view", err)
	}
	return nil
}
