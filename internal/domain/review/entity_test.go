//go:build unit

package review_test

import (
	"strings"
	"testing"
	"time"

	"rental-listings/internal/domain/review"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tenantID := uuid.New()
	listingID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		actual, err := review.NewReview(tenantID, listingID, 5, "Great apartment, quiet street.", now)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, tenantID, actual.TenantID())
		assert.Equal(t, listingID, actual.ListingID())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.Equal(t, "Great apartment, quiet street.", actual.Comment().String())
		assert.Equal(t, now, actual.CreatedAt())
		assert.Equal(t, now, actual.UpdatedAt())
	})

	t.Run("comment is optional", func(t *testing.T) {
		actual, err := review.NewReview(tenantID, listingID, 3, "", now)
		require.NoError(t, err)
		assert.True(t, actual.Comment().IsEmpty())
	})

	t.Run("rating validation", func(t *testing.T) {
		cases := []struct {
			name   string
			rating int
			errIs  error
		}{
			{name: "below minimum", rating: 0, errIs: review.ErrInvalidRating},
			{name: "negative", rating: -1, errIs: review.ErrInvalidRating},
			{name: "minimum valid", rating: 1},
			{name: "maximum valid", rating: 5},
			{name: "above maximum", rating: 6, errIs: review.ErrInvalidRating},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := review.NewReview(tenantID, listingID, tc.rating, "", now)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("comment length validation", func(t *testing.T) {
		_, err := review.NewReview(tenantID, listingID, 4, strings.Repeat("a", review.MaxCommentLength), now)
		require.NoError(t, err)

		_, err = review.NewReview(tenantID, listingID, 4, strings.Repeat("a", review.MaxCommentLength+1), now)
		assert.ErrorIs(t, err, review.ErrCommentTooLong)
	})

	t.Run("comment is trimmed", func(t *testing.T) {
		actual, err := review.NewReview(tenantID, listingID, 4, "  spacious  ", now)
		require.NoError(t, err)
		assert.Equal(t, "spacious", actual.Comment().String())
	})
}
