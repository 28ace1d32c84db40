package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong  = errors.New("comment exceeds maximum length")
	ErrNotEligible     = errors.New("tenant has no completed approved stay for this listing")
	ErrDuplicateReview = errors.New("tenant already reviewed this listing")
)

// Review is a tenant's rating of a listing, gated on a completed
// approved stay. At most one review per (tenant, listing) pair.
type Review struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	listingID uuid.UUID
	rating    Rating
	comment   Comment
	createdAt time.Time
	updatedAt time.Time
}

func NewReview(tenantID, listingID uuid.UUID, ratingValue int, commentText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	return &Review{
		id:        uuid.New(),
		tenantID:  tenantID,
		listingID: listingID,
		rating:    rating,
		comment:   comment,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReview(id, tenantID, listingID uuid.UUID, rating Rating, comment Comment, createdAt, updatedAt time.Time) *Review {
	return &Review{
		id:        id,
		tenantID:  tenantID,
		listingID: listingID,
		rating:    rating,
		comment:   comment,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) TenantID() uuid.UUID  { return r.tenantID }
func (r *Review) ListingID() uuid.UUID { return r.listingID }
func (r *Review) Rating() Rating       { return r.rating }
func (r *Review) Comment() Comment     { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
func (r *Review) UpdatedAt() time.Time { return r.updatedAt }
