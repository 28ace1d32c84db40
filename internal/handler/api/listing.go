package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rental-listings/internal/domain/listing"
	reqdto "rental-listings/internal/handler/dto/request"
	resdto "rental-listings/internal/handler/dto/response"
	"rental-listings/internal/handler/httperr"
	"rental-listings/internal/handler/middleware"
	"rental-listings/internal/usecase/commands"
	"rental-listings/internal/usecase/queries"
)

type ListingHandler struct {
	cmds commands.ListingCommands
	q    queries.ListingQueries
}

func NewListingHandler(cmds commands.ListingCommands, q queries.ListingQueries) *ListingHandler {
	return &ListingHandler{cmds: cmds, q: q}
}

// @Summary Create listing
// @Description Create a new rental listing (landlords only)
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Create listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateListing(c.Request.Context(), req.ToCommand(), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotLandlord):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only landlords can create listings", nil)
		case isListingValidationErr(err):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.ListingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load listing", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromListingView(view))
}

// @Summary Get listing
// @Description Get a listing by ID with rating summary
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	// View history: one record per signed-in viewer, listing and day.
	if viewerID, ok := middleware.GetUserID(c); ok {
		if verr := h.q.RecordView(c.Request.Context(), viewerID, id); verr != nil {
			slog.Warn("Failed to record listing view", "listing_id", id, "error", verr.Error())
		}
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary Search listings
// @Description Search active listings with filters, sorting and keyset pagination
// @Tags listings
// @Produce json
// @Param keyword query string false "Keyword matched against title and description"
// @Param location query string false "Location substring"
// @Param min_price query int false "Minimum price in cents"
// @Param max_price query int false "Maximum price in cents"
// @Param min_rooms query int false "Minimum number of rooms"
// @Param max_rooms query int false "Maximum number of rooms"
// @Param housing_type query string false "Housing type (apartment, house, studio)"
// @Param sort query string false "Sort order (newest, price_asc, price_desc)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.ListingListItemResponse
// @Failure 400 {object} map[string]string
// @Router /listings [get]
func (h *ListingHandler) Search(c *gin.Context) {
	var req reqdto.SearchListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	filters, err := req.ToFilters()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid sort order", nil)
		return
	}

	limit := queries.ValidateLimit(req.Limit)
	var cursor *queries.Cursor
	if req.After != "" {
		cursor = &queries.Cursor{After: req.After}
	}

	items, next, err := h.q.Search(c.Request.Context(), filters, cursor, limit)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	resp := gin.H{"listings": resdto.FromListingList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List own listings
// @Description List listings owned by the current landlord
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.ListingListItemResponse
// @Failure 401 {object} map[string]string
// @Router /listings/mine [get]
func (h *ListingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
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

	items, next, err := h.q.ListByLandlord(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	resp := gin.H{"listings": resdto.FromListingList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update listing
// @Description Update an owned listing (partial update)
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.UpdateListingRequest true "Update listing request"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [patch]
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.UpdateListingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	if err := h.cmds.UpdateListing(c.Request.Context(), id, req.ToCommand(), userID); err != nil {
		h.abortListingCommandErr(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load listing", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary Toggle listing visibility
// @Description Flip the listing between active and inactive
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id}/toggle-active [post]
func (h *ListingHandler) ToggleActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	result, err := h.cmds.ToggleListingActive(c.Request.Context(), id, userID)
	if err != nil {
		h.abortListingCommandErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_active": result.IsActive})
}

// @Summary Delete listing
// @Description Delete an owned listing
// @Tags listings
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	if err := h.cmds.DeleteListing(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrListingHasBookings):
			httperr.AbortWithError(c, http.StatusConflict, err, "Listing has bookings", nil)
		default:
			h.abortListingCommandErr(c, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ListingHandler) abortListingCommandErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrListingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
	case errors.Is(err, commands.ErrListingNotOwned):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Listing is not yours", nil)
	case isListingValidationErr(err):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func isListingValidationErr(err error) bool {
	return errors.Is(err, listing.ErrEmptyTitle) ||
		errors.Is(err, listing.ErrTitleTooLong) ||
		errors.Is(err, listing.ErrEmptyLocation) ||
		errors.Is(err, listing.ErrNegativePrice) ||
		errors.Is(err, listing.ErrInvalidRooms) ||
		errors.Is(err, listing.ErrInvalidHousingType)
}
