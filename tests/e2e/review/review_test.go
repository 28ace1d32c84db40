//go:build e2e

package review_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"rental-listings/internal/domain/user"
	"rental-listings/internal/handler/dto/request"
	"rental-listings/internal/handler/dto/response"
	"rental-listings/tests/common/authtest"
	"rental-listings/tests/common/dbtest"
	"rental-listings/tests/common/httptest"
	"rental-listings/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reviewsURL        = "/api/reviews"
	listingReviewsURL = "/api/listings/%s/reviews"
	ratingStatsURL    = "/api/listings/%s/rating-stats"
	canReviewURL      = "/api/listings/%s/can-review"
)

type ReviewSuite struct {
	e2e.SharedSuite
}

func TestReviewSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReviewSuite))
}

// seedCompletedStay creates a landlord, a listing, a tenant, and an approved
// stay that ended in the past, making the tenant eligible to review.
func (s *ReviewSuite) seedCompletedStay(t *testing.T, tenantEmail string) (listingID uuid.UUID, tenantToken string) {
	landlordID := dbtest.CreateTestUser(t, s.DB, "landlord@example.com", string(user.RoleLandlord))
	listingID = dbtest.CreateTestListing(t, s.DB, landlordID, "Reviewed flat")
	tenantID := dbtest.CreateTestUser(t, s.DB, tenantEmail, string(user.RoleTenant))

	now := time.Now().UTC()
	dbtest.CreateTestBooking(t, s.DB, listingID, tenantID,
		now.AddDate(0, 0, -10), now.AddDate(0, 0, -5), "approved")

	tenantToken = authtest.LoginUser(t, s.Router, tenantEmail, "password123")
	return listingID, tenantToken
}

func (s *ReviewSuite) createReview(t *testing.T, token string, listingID uuid.UUID, rating int, comment string) string {
	reqBody := request.CreateReviewRequest{Rating: rating, Comment: comment}
	url := fmt.Sprintf(listingReviewsURL, listingID.String())
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.ReviewResponse
	err := httptest.DecodeResponseBody(t, w.Body, &created)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	return created.ID
}

// =============================================================================
// TestCreateReview - Review creation API tests
// =============================================================================

func (s *ReviewSuite) TestCreateReview() {
	s.Run("Normal case: Tenant with completed stay can create review", func() {
		t := s.T()

		listingID, token := s.seedCompletedStay(t, "reviewer@example.com")
		id := s.createReview(t, token, listingID, 5, "Lovely place, quiet street")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reviewsURL+"/"+id, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var actualRes response.ReviewResponse
		err := httptest.DecodeResponseBody(t, w.Body, &actualRes)
		require.NoError(t, err)

		expected := &response.ReviewResponse{
			ID:          id,
			ListingID:   listingID.String(),
			TenantEmail: "reviewer@example.com",
			Rating:      5,
			Comment:     "Lovely place, quiet street",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReviewResponse{}, "TenantID", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &actualRes, opts...); diff != "" {
			t.Errorf("Review response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: No completed stay means no review", func() {
		t := s.T()

		landlordID := dbtest.CreateTestUser(t, s.DB, "landlord@example.com", string(user.RoleLandlord))
		listingID := dbtest.CreateTestListing(t, s.DB, landlordID, "Unvisited flat")
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "stranger@example.com", string(user.RoleTenant))

		reqBody := request.CreateReviewRequest{Rating: 4, Comment: "Looks nice"}
		url := fmt.Sprintf(listingReviewsURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "No completed stay")
	})

	s.Run("Error case: Stay still in progress does not qualify", func() {
		t := s.T()

		landlordID := dbtest.CreateTestUser(t, s.DB, "landlord@example.com", string(user.RoleLandlord))
		listingID := dbtest.CreateTestListing(t, s.DB, landlordID, "Flat")
		tenantID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleTenant))

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, listingID, tenantID,
			now.AddDate(0, 0, -2), now.AddDate(0, 0, 3), "approved")

		token := authtest.LoginUser(t, s.Router, "guest@example.com", "password123")

		reqBody := request.CreateReviewRequest{Rating: 4, Comment: "So far so good"}
		url := fmt.Sprintf(listingReviewsURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: Duplicate review for same listing fails", func() {
		t := s.T()

		listingID, token := s.seedCompletedStay(t, "reviewer2@example.com")
		s.createReview(t, token, listingID, 4, "First impression")

		reqBody := request.CreateReviewRequest{Rating: 2, Comment: "Changed my mind"}
		url := fmt.Sprintf(listingReviewsURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already reviewed")
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		landlordID := dbtest.CreateTestUser(t, s.DB, "landlord@example.com", string(user.RoleLandlord))
		listingID := dbtest.CreateTestListing(t, s.DB, landlordID, "Flat")

		reqBody := request.CreateReviewRequest{Rating: 5, Comment: "Great"}
		url := fmt.Sprintf(listingReviewsURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestUpdateReview - Review update API tests
// =============================================================================

func (s *ReviewSuite) TestUpdateReview() {
	s.Run("Normal case: Author can update their review", func() {
		t := s.T()

		listingID, token := s.seedCompletedStay(t, "reviewer@example.com")
		id := s.createReview(t, token, listingID, 3, "Fine")

		updateReq := request.UpdateReviewRequest{Rating: 5, Comment: "Grew on me"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reviewsURL+"/"+id, updateReq, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.ReviewResponse
		err := httptest.DecodeResponseBody(t, w.Body, &updated)
		require.NoError(t, err)
		require.Equal(t, id, updated.ID)
		require.Equal(t, int32(5), updated.Rating)
		require.Equal(t, "Grew on me", updated.Comment)
	})

	s.Run("Error case: Another tenant cannot update", func() {
		t := s.T()

		listingID, authorToken := s.seedCompletedStay(t, "author@example.com")
		id := s.createReview(t, authorToken, listingID, 3, "Fine")

		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleTenant))

		updateReq := request.UpdateReviewRequest{Rating: 1, Comment: "Sabotage"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reviewsURL+"/"+id, updateReq, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: Returns 404 Not Found for non-existent ID", func() {
		t := s.T()

		_, token := s.seedCompletedStay(t, "reviewer@example.com")

		updateReq := request.UpdateReviewRequest{Rating: 4, Comment: "Ghost"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reviewsURL+"/"+uuid.New().String(), updateReq, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestDeleteReview - Review deletion API tests
// =============================================================================

func (s *ReviewSuite) TestDeleteReview() {
	s.Run("Normal case: Author can delete their review", func() {
		t := s.T()

		listingID, token := s.seedCompletedStay(t, "reviewer@example.com")
		id := s.createReview(t, token, listingID, 2, "Not great")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reviewsURL+"/"+id, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		getResp := httptest.PerformRequest(t, s.Router, http.MethodGet, reviewsURL+"/"+id, nil, "")
		require.Equal(t, http.StatusNotFound, getResp.Code, "Review should be deleted")
	})

	s.Run("Normal case: Deleting frees the tenant to review again", func() {
		t := s.T()

		listingID, token := s.seedCompletedStay(t, "reviewer@example.com")
		id := s.createReview(t, token, listingID, 2, "Not great")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reviewsURL+"/"+id, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		s.createReview(t, token, listingID, 4, "Second thoughts")
	})

	s.Run("Error case: Another tenant cannot delete", func() {
		t := s.T()

		listingID, authorToken := s.seedCompletedStay(t, "author@example.com")
		id := s.createReview(t, authorToken, listingID, 3, "Fine")

		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleTenant))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reviewsURL+"/"+id, nil, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}

// =============================================================================
// TestListListingReviews - Listing reviews list API tests
// =============================================================================

func (s *ReviewSuite) TestListListingReviews() {
	s.Run("Normal case: Integration test (filter + pagination)", func() {
		t := s.T()

		landlordID := dbtest.CreateTestUser(t, s.DB, "landlord@example.com", string(user.RoleLandlord))
		listingID := dbtest.CreateTestListing(t, s.DB, landlordID, "Popular flat")

		now := time.Now().UTC()
		ratings := []int{5, 2, 4}
		for i, rating := range ratings {
			email := fmt.Sprintf("guest%d@example.com", i)
			tenantID := dbtest.CreateTestUser(t, s.DB, email, string(user.RoleTenant))
			dbtest.CreateTestBooking(t, s.DB, listingID, tenantID,
				now.AddDate(0, 0, -20+i), now.AddDate(0, 0, -15+i), "approved")
			token := authtest.LoginUser(t, s.Router, email, "password123")
			s.createReview(t, token, listingID, rating, fmt.Sprintf("Review %d", i))
		}

		baseURL := fmt.Sprintf(listingReviewsURL, listingID.String())

		type listTestCase struct {
			name          string
			queryParams   string
			expectedCount int
		}
		testCases := []listTestCase{
			{"All reviews", "", 3},
			{"Filter by minimum rating", "?min_rating=4", 2},
			{"Filter by maximum rating", "?max_rating=3", 1},
			{"Limit results", "?limit=2", 2},
		}
		for _, tc := range testCases {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, baseURL+tc.queryParams, nil, "")
			require.Equal(t, http.StatusOK, w.Code, tc.name)

			var actualRes struct {
				Reviews []*response.ReviewListItemResponse `json:"reviews"`
			}
			err := httptest.DecodeResponseBody(t, w.Body, &actualRes)
			require.NoError(t, err, tc.name)
			require.Len(t, actualRes.Reviews, tc.expectedCount, tc.name)
		}
	})
}

// =============================================================================
// TestListingRatingStats - Rating statistics API tests
// =============================================================================

func (s *ReviewSuite) TestListingRatingStats() {
	s.Run("Normal case: Stats aggregate all reviews", func() {
		t := s.T()

		landlordID := dbtest.CreateTestUser(t, s.DB, "landlord@example.com", string(user.RoleLandlord))
		listingID := dbtest.CreateTestListing(t, s.DB, landlordID, "Rated flat")

		now := time.Now().UTC()
		ratings := []int{5, 4, 3}
		for i, rating := range ratings {
			email := fmt.Sprintf("rater%d@example.com", i)
			tenantID := dbtest.CreateTestUser(t, s.DB, email, string(user.RoleTenant))
			dbtest.CreateTestBooking(t, s.DB, listingID, tenantID,
				now.AddDate(0, 0, -20+i), now.AddDate(0, 0, -15+i), "approved")
			token := authtest.LoginUser(t, s.Router, email, "password123")
			s.createReview(t, token, listingID, rating, "ok")
		}

		url := fmt.Sprintf(ratingStatsURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var actualRes response.ListingRatingStatsResponse
		err := httptest.DecodeResponseBody(t, w.Body, &actualRes)
		require.NoError(t, err)
		require.InDelta(t, 4.0, actualRes.AverageRating, 0.01)

		expected := &response.ListingRatingStatsResponse{
			ListingID:    listingID.String(),
			TotalReviews: 3,
			Rating3Count: 1,
			Rating4Count: 1,
			Rating5Count: 1,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ListingRatingStatsResponse{}, "AverageRating"),
		}
		if diff := cmp.Diff(expected, &actualRes, opts...); diff != "" {
			t.Errorf("Rating stats mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: Listing without reviews returns zero stats", func() {
		t := s.T()

		landlordID := dbtest.CreateTestUser(t, s.DB, "landlord@example.com", string(user.RoleLandlord))
		listingID := dbtest.CreateTestListing(t, s.DB, landlordID, "Fresh flat")

		url := fmt.Sprintf(ratingStatsURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var actualRes response.ListingRatingStatsResponse
		err := httptest.DecodeResponseBody(t, w.Body, &actualRes)
		require.NoError(t, err)
		require.Equal(t, int32(0), actualRes.TotalReviews)
		require.Equal(t, 0.0, actualRes.AverageRating)
	})
}

// =============================================================================
// TestCanReview - Review eligibility API tests
// =============================================================================

func (s *ReviewSuite) TestCanReview() {
	s.Run("Normal case: Eligible tenant gets can_review true", func() {
		t := s.T()

		listingID, token := s.seedCompletedStay(t, "eligible@example.com")

		url := fmt.Sprintf(canReviewURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var actualRes response.CanReviewResponse
		err := httptest.DecodeResponseBody(t, w.Body, &actualRes)
		require.NoError(t, err)
		require.True(t, actualRes.CanReview)
		require.Empty(t, actualRes.Reason)
	})

	s.Run("Normal case: Tenant without stay gets a reason", func() {
		t := s.T()

		landlordID := dbtest.CreateTestUser(t, s.DB, "landlord@example.com", string(user.RoleLandlord))
		listingID := dbtest.CreateTestListing(t, s.DB, landlordID, "Flat")
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "stranger@example.com", string(user.RoleTenant))

		url := fmt.Sprintf(canReviewURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var actualRes response.CanReviewResponse
		err := httptest.DecodeResponseBody(t, w.Body, &actualRes)
		require.NoError(t, err)
		require.False(t, actualRes.CanReview)
		require.NotEmpty(t, actualRes.Reason)
	})

	s.Run("Normal case: Already reviewed tenant gets can_review false", func() {
		t := s.T()

		listingID, token := s.seedCompletedStay(t, "reviewer@example.com")
		s.createReview(t, token, listingID, 4, "Nice")

		url := fmt.Sprintf(canReviewURL, listingID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var actualRes response.CanReviewResponse
		err := httptest.DecodeResponseBody(t, w.Body, &actualRes)
		require.NoError(t, err)
		require.False(t, actualRes.CanReview)
	})
}
