package response

import (
	"rental-listings/internal/usecase/queries"
)

type ReviewResponse struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	TenantEmail string `json:"tenant_email"`
	ListingID   string `json:"listing_id"`
	Rating      int32  `json:"rating"`
	Comment     string `json:"comment"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:          v.ID.String(),
		TenantID:    v.TenantID.String(),
		TenantEmail: v.TenantEmail,
		ListingID:   v.ListingID.String(),
		Rating:      v.Rating,
		Comment:     v.Comment,
		CreatedAt:   v.CreatedAt.Unix(),
		UpdatedAt:   v.UpdatedAt.Unix(),
	}
}

type ReviewListItemResponse struct {
	ID          string `json:"id"`
	TenantEmail string `json:"tenant_email"`
	Rating      int32  `json:"rating"`
	Comment     string `json:"comment"`
	CreatedAt   int64  `json:"created_at"`
}

func FromReviewList(items []*queries.ReviewListItem) []*ReviewListItemResponse {
	res := make([]*ReviewListItemResponse, len(items))
	for i, it := range items {
		res[i] = &ReviewListItemResponse{
			ID:          it.ID.String(),
			TenantEmail: it.TenantEmail,
			Rating:      it.Rating,
			Comment:     it.Comment,
			CreatedAt:   it.CreatedAt.Unix(),
		}
	}
	return res
}

type ListingRatingStatsResponse struct {
	ListingID     string  `json:"listing_id"`
	TotalReviews  int32   `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	Rating1Count  int32   `json:"rating_1_count"`
	Rating2Count  int32   `json:"rating_2_count"`
	Rating3Count  int32   `json:"rating_3_count"`
	Rating4Count  int32   `json:"rating_4_count"`
	Rating5Count  int32   `json:"rating_5_count"`
}

func FromListingRatingStats(s *queries.ListingRatingStats) *ListingRatingStatsResponse {
	return &ListingRatingStatsResponse{
		ListingID:     s.ListingID.String(),
		TotalReviews:  s.TotalReviews,
		AverageRating: s.AverageRating,
		Rating1Count:  s.RatingCounts[0],
		Rating2Count:  s.RatingCounts[1],
		Rating3Count:  s.RatingCounts[2],
		Rating4Count:  s.RatingCounts[3],
		Rating5Count:  s.RatingCounts[4],
	}
}

type CanReviewResponse struct {
	CanReview bool   `json:"can_review"`
	Reason    string `json:"reason,omitempty"`
}

func FromCanReviewResult(r *queries.CanReviewResult) *CanReviewResponse {
	return &CanReviewResponse{CanReview: r.CanReview, Reason: r.Reason}
}
