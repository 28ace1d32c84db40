//go:build unit || e2e

package builder

import (
	"time"

	domreview "rental-listings/internal/domain/review"
	reqdto "rental-listings/internal/handler/dto/request"
	"rental-listings/internal/usecase/queries"
	"rental-listings/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	TenantEmail string
	ListingID   uuid.UUID
	Rating      int
	Comment     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	now := time.Now()
	return &ReviewBuilder{
		ID:          uuid.New(),
		TenantID:    uuid.New(),
		TenantEmail: "tenant@example.com",
		ListingID:   uuid.New(),
		Rating:      5,
		Comment:     "Great place, would stay again",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *ReviewBuilder) WithTenantID(id uuid.UUID) *ReviewBuilder {
	r.TenantID = id
	return r
}

func (r *ReviewBuilder) WithListingID(id uuid.UUID) *ReviewBuilder {
	r.ListingID = id
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(r.TenantID, r.ListingID, r.Rating, r.Comment, r.CreatedAt)
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}

func (r *ReviewBuilder) BuildUpdateRequestDTO() reqdto.UpdateReviewRequest {
	return reqdto.UpdateReviewRequest{
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}

func (r *ReviewBuilder) BuildViewQuery() *queries.ReviewView {
	return &queries.ReviewView{
		ID:          r.ID,
		TenantID:    r.TenantID,
		TenantEmail: r.TenantEmail,
		ListingID:   r.ListingID,
		Rating:      int32(r.Rating),
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *ReviewBuilder) BuildListItem() *queries.ReviewListItem {
	return &queries.ReviewListItem{
		ID:          r.ID,
		TenantEmail: r.TenantEmail,
		Rating:      int32(r.Rating),
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildSnapshot() *shared.ReviewSnapshot {
	return &shared.ReviewSnapshot{
		ID:        r.ID,
		TenantID:  r.TenantID,
		ListingID: r.ListingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

func (r *ReviewBuilder) BuildRatingStats() *queries.ListingRatingStats {
	return &queries.ListingRatingStats{
		ListingID:     r.ListingID,
		TotalReviews:  10,
		AverageRating: 4.2,
		RatingCounts:  [5]int32{1, 1, 2, 3, 3},
	}
}
