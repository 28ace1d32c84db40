package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rental-listings/internal/domain/review"
	reqdto "rental-listings/internal/handler/dto/request"
	resdto "rental-listings/internal/handler/dto/response"
	"rental-listings/internal/handler/httperr"
	"rental-listings/internal/handler/middleware"
	"rental-listings/internal/usecase/commands"
	"rental-listings/internal/usecase/queries"
)

type ReviewHandler struct {
	cmds commands.ReviewCommands
	q    queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q}
}

// @Summary Create review
// @Description Post a review for a listing after a completed approved stay (tenants only)
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.CreateReviewRequest true "Create review request"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /listings/{id}/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.CreateReviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateReview(c.Request.Context(), req.ToCommand(listingID), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotTenant):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only tenants can post reviews", nil)
		case errors.Is(err, commands.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
		case errors.Is(err, commands.ErrNotEligible):
			httperr.AbortWithError(c, http.StatusForbidden, err, "No completed stay on this listing", nil)
		case errors.Is(err, commands.ErrDuplicateReview):
			httperr.AbortWithError(c, http.StatusConflict, err, "Listing already reviewed", nil)
		case errors.Is(err, review.ErrInvalidRating),
			errors.Is(err, review.ErrCommentTooLong):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.ReviewID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load review", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReviewView(view))
}

// @Summary Get review
// @Description Get a review by ID
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReviewNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Review not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewView(view))
}

// @Summary Update review
// @Description Update an own review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.UpdateReviewRequest true "Update review request"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.UpdateReviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	if err := h.cmds.UpdateReview(c.Request.Context(), id, req.ToCommand(), userID); err != nil {
		h.abortReviewCommandErr(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load review", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewView(view))
}

// @Summary Delete review
// @Description Delete an own review
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	if err := h.cmds.DeleteReview(c.Request.Context(), id, userID); err != nil {
		h.abortReviewCommandErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List listing reviews
// @Description List reviews for a listing with optional rating filters and keyset pagination
// @Tags reviews
// @Produce json
// @Param id path string true "Listing ID"
// @Param min_rating query int false "Minimum rating (1-5)"
// @Param max_rating query int false "Maximum rating (1-5)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.ReviewListItemResponse
// @Failure 400 {object} map[string]string
// @Router /listings/{id}/reviews [get]
func (h *ReviewHandler) ListByListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return
	}

	var minPtr, maxPtr *int
	if v := c.Query("min_rating"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			minPtr = &iv
		}
	}
	if v := c.Query("max_rating"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			maxPtr = &iv
		}
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.ListByListing(c.Request.Context(), listingID, queries.ReviewFilters{MinRating: minPtr, MaxRating: maxPtr}, cursor, limit)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	resp := gin.H{"reviews": resdto.FromReviewList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Listing rating stats
// @Description Get rating statistics for a listing
// @Tags reviews
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingRatingStatsResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /listings/{id}/rating-stats [get]
func (h *ReviewHandler) ListingRatingStats(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return
	}

	stats, err := h.q.GetListingRatingStats(c.Request.Context(), listingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to get stats", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListingRatingStats(stats))
}

// @Summary Review eligibility
// @Description Check whether the current tenant can review a listing
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.CanReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /listings/{id}/can-review [get]
func (h *ReviewHandler) CanReview(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	result, err := h.q.CanReview(c.Request.Context(), userID, listingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCanReviewResult(result))
}

func (h *ReviewHandler) abortReviewCommandErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReviewNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Review not found", nil)
	case errors.Is(err, commands.ErrReviewNotOwned):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Review is not yours", nil)
	case errors.Is(err, review.ErrInvalidRating), errors.Is(err, review.ErrCommentTooLong):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
