//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"rental-listings/internal/domain/review"
	"rental-listings/internal/domain/user"
	"rental-listings/internal/handler/api"
	resdto "rental-listings/internal/handler/dto/response"
	"rental-listings/internal/usecase/commands"
	"rental-listings/internal/usecase/queries"
	"rental-listings/tests/common/builder"
	"rental-listings/tests/common/httptest"
	commandsmock "rental-listings/tests/mock/commands"
	queriesmock "rental-listings/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReviewCommands
	mockQueries  *queriesmock.MockReviewQueries
	handler      *api.ReviewHandler
	tenantID     uuid.UUID
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReviewCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.handler = api.NewReviewHandler(s.mockCommands, s.mockQueries)
	s.tenantID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.tenantID)
		c.Set("user_role", user.RoleTenant)
		c.Next()
	}

	s.router.POST("/listings/:id/reviews", authMiddleware, s.handler.Create)
	s.router.GET("/listings/:id/reviews", s.handler.ListByListing)
	s.router.GET("/listings/:id/rating-stats", s.handler.ListingRatingStats)
	s.router.GET("/listings/:id/can-review", authMiddleware, s.handler.CanReview)
	s.router.GET("/reviews/:id", s.handler.Get)
	s.router.PUT("/reviews/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/reviews/:id", authMiddleware, s.handler.Delete)
}

func (s *ReviewHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReviewHandlerTestSuite) TestCreate() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String() + "/reviews"

	b := builder.NewReviewBuilder().WithTenantID(s.tenantID).WithListingID(listingID)
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildViewQuery()
	expectedResult := &commands.CreateReviewResult{ReviewID: returnView.ID}

	s.Run("success: returns 201 Created with ReviewResponse", func() {
		s.mockCommands.EXPECT().CreateReview(gomock.Any(), gomock.Any(), s.tenantID, user.RoleTenant).
			Return(expectedResult, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID.String(), response.ID)
		s.Equal(returnView.Rating, response.Rating)
		s.Equal(returnView.Comment, response.Comment)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, body := range []gin.H{
			{"rating": 0, "comment": "x"},
			{"rating": 6, "comment": "x"},
			{"comment": "x"},
			{"rating": 4, "comment": strings.Repeat("a", 1001)},
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "not a tenant",
				commandsError:  commands.ErrNotTenant,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Only tenants can post reviews",
			},
			{
				name:           "listing not found",
				commandsError:  commands.ErrListingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Listing not found",
			},
			{
				name:           "no completed stay",
				commandsError:  commands.ErrNotEligible,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "No completed stay",
			},
			{
				name:           "already reviewed",
				commandsError:  commands.ErrDuplicateReview,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already reviewed",
			},
			{
				name:           "invalid rating",
				commandsError:  review.ErrInvalidRating,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid review data",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateReview(gomock.Any(), gomock.Any(), s.tenantID, user.RoleTenant).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReviewHandlerTestSuite) TestGet() {
	reviewID := uuid.New()
	url := "/reviews/" + reviewID.String()

	returnView := builder.NewReviewBuilder().BuildViewQuery()
	returnView.ID = reviewID

	s.Run("success: returns 200 OK with ReviewResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), reviewID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reviewID.String(), response.ID)
		s.Equal(returnView.Rating, response.Rating)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/invalid-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid review id")
	})

	s.Run("error: 404 Not Found for missing review", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), reviewID).
			Return(nil, queries.ErrReviewNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Review not found")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ReviewHandlerTestSuite) TestUpdate() {
	reviewID := uuid.New()
	url := "/reviews/" + reviewID.String()

	reqBody := builder.NewReviewBuilder().BuildUpdateRequestDTO()
	returnView := builder.NewReviewBuilder().BuildViewQuery()
	returnView.ID = reviewID

	s.Run("success: returns 200 OK with the updated review", func() {
		s.mockCommands.EXPECT().UpdateReview(gomock.Any(), reviewID, gomock.Any(), s.tenantID).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), reviewID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var response resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reviewID.String(), response.ID)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "review not found",
				commandsError:  commands.ErrReviewNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Review not found",
			},
			{
				name:           "not the author",
				commandsError:  commands.ErrReviewNotOwned,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "not yours",
			},
			{
				name:           "invalid rating",
				commandsError:  review.ErrInvalidRating,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid review data",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateReview(gomock.Any(), reviewID, gomock.Any(), s.tenantID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ReviewHandlerTestSuite) TestDelete() {
	reviewID := uuid.New()
	url := "/reviews/" + reviewID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteReview(gomock.Any(), reviewID, s.tenantID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 Forbidden for someone else's review", func() {
		s.mockCommands.EXPECT().DeleteReview(gomock.Any(), reviewID, s.tenantID).
			Return(commands.ErrReviewNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "not yours")
	})

	s.Run("error: 404 Not Found for missing review", func() {
		s.mockCommands.EXPECT().DeleteReview(gomock.Any(), reviewID, s.tenantID).
			Return(commands.ErrReviewNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Review not found")
	})
}

// ================================================================================
// TestListByListing
// ================================================================================

func (s *ReviewHandlerTestSuite) TestListByListing() {
	listingID := uuid.New()
	baseURL := "/listings/" + listingID.String() + "/reviews"

	items := []*queries.ReviewListItem{
		builder.NewReviewBuilder().WithRating(5).BuildListItem(),
		builder.NewReviewBuilder().WithRating(4).BuildListItem(),
	}

	s.Run("success: returns review list", func() {
		s.mockQueries.EXPECT().ListByListing(gomock.Any(), listingID, queries.ReviewFilters{}, (*queries.Cursor)(nil), 20).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		reviews, ok := response["reviews"].([]any)
		s.True(ok)
		s.Equal(len(items), len(reviews))
	})

	s.Run("success: rating filters and pagination", func() {
		minRating, maxRating := 4, 5
		expectedFilters := queries.ReviewFilters{MinRating: &minRating, MaxRating: &maxRating}
		nextCursor := &queries.Cursor{After: "next_cursor456"}

		s.mockQueries.EXPECT().ListByListing(gomock.Any(), listingID, expectedFilters, &queries.Cursor{After: "cursor123"}, 10).
			Return(items[:1], nextCursor, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?min_rating=4&max_rating=5&limit=10&after=cursor123", nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("next_cursor456", response["next_cursor"])
	})

	s.Run("error: 400 Bad Request for invalid listing UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings/invalid-uuid/reviews", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid listing id")
	})

	s.Run("error: 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().ListByListing(gomock.Any(), listingID, queries.ReviewFilters{}, (*queries.Cursor)(nil), 20).
			Return(nil, nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestListingRatingStats
// ================================================================================

func (s *ReviewHandlerTestSuite) TestListingRatingStats() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String() + "/rating-stats"

	expectedStats := builder.NewReviewBuilder().WithListingID(listingID).BuildRatingStats()

	s.Run("success: returns 200 OK with ListingRatingStatsResponse", func() {
		s.mockQueries.EXPECT().GetListingRatingStats(gomock.Any(), listingID).
			Return(expectedStats, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.ListingRatingStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(listingID.String(), response.ListingID)
		s.Equal(expectedStats.TotalReviews, response.TotalReviews)
		s.Equal(expectedStats.AverageRating, response.AverageRating)
		s.Equal(expectedStats.RatingCounts[0], response.Rating1Count)
		s.Equal(expectedStats.RatingCounts[4], response.Rating5Count)
	})

	s.Run("error: 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().GetListingRatingStats(gomock.Any(), listingID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to get stats")
	})
}

// ================================================================================
// TestCanReview
// ================================================================================

func (s *ReviewHandlerTestSuite) TestCanReview() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String() + "/can-review"

	s.Run("success: eligible tenant", func() {
		s.mockQueries.EXPECT().CanReview(gomock.Any(), s.tenantID, listingID).
			Return(&queries.CanReviewResult{CanReview: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.CanReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.CanReview)
		s.Empty(response.Reason)
	})

	s.Run("success: ineligible tenant carries a reason", func() {
		s.mockQueries.EXPECT().CanReview(gomock.Any(), s.tenantID, listingID).
			Return(&queries.CanReviewResult{CanReview: false, Reason: queries.ReasonNoCompletedStay}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.CanReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.CanReview)
		s.Equal(queries.ReasonNoCompletedStay, response.Reason)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
