package repository

import (
	"context"

	"rental-listings/internal/domain/review"
	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

const createReviewSQL = `
INSERT INTO reviews (id, tenant_id, listing_id, rating, comment)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createReviewSQL,
		rev.ID(), rev.TenantID(), rev.ListingID(), rev.Rating().Value(), rev.Comment().String(),
	).Scan(&id)
	if err != nil {
		switch {
		case pgconv.IsUniqueViolation(err):
			return uuid.Nil, infra.WrapRepoErr("tenant already reviewed listing", err, infra.KindDuplicateKey)
		case pgconv.IsForeignKeyViolation(err):
			return uuid.Nil, infra.WrapRepoErr("review references missing listing or tenant", err, infra.KindForeignKeyViolated)
		default:
			return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
		}
	}
	return id, nil
}

const updateReviewSQL = `
UPDATE reviews SET rating = $2, comment = $3, updated_at = now() WHERE id = $1
`

func (r *ReviewRepository) Update(ctx context.Context, tx db.DBTX, rev *review.Review) error {
	tag, err := tx.Exec(ctx, updateReviewSQL, rev.ID(), rev.Rating().Value(), rev.Comment().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteReviewSQL = `
DELETE FROM reviews WHERE id = $1
`

func (r *ReviewRepository) Delete(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteReviewSQL, reviewID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}
