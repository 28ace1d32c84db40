package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rental-listings/internal/domain/booking"
	reqdto "rental-listings/internal/handler/dto/request"
	resdto "rental-listings/internal/handler/dto/response"
	"rental-listings/internal/handler/httperr"
	"rental-listings/internal/handler/middleware"
	"rental-listings/internal/usecase/commands"
	"rental-listings/internal/usecase/queries"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Request booking
// @Description Request a stay on a listing for a half-open date interval (tenants only)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /listings/{id}/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
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

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	cmd, err := req.ToCommand(listingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	result, err := h.cmds.RequestBooking(c.Request.Context(), cmd, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotTenant):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only tenants can request bookings", nil)
		case errors.Is(err, commands.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
		case errors.Is(err, commands.ErrListingInactive):
			httperr.AbortWithError(c, http.StatusConflict, err, "Listing is not accepting bookings", nil)
		case errors.Is(err, commands.ErrDatesUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Requested dates are unavailable", nil)
		case errors.Is(err, booking.ErrInvalidStayPeriod),
			errors.Is(err, booking.ErrStartNotInFuture):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay period", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.BookingID, userID, role)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking by ID (visible to its tenant and the listing's landlord)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.q.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, queries.ErrBookingAccess):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description List the current tenant's bookings split into active and past stays
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bucket query string false "Stay bucket (active, past; default active)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.BookingListItemResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	bucket, err := queries.ParseStayBucket(c.Query("bucket"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid bucket", nil)
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

	items, next, err := h.q.ListByTenant(c.Request.Context(), userID, bucket, cursor, limit)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	resp := gin.H{"bookings": resdto.FromBookingList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List listing bookings
// @Description List booking requests for an owned listing (landlords only)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.BookingListItemResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id}/bookings [get]
func (h *BookingHandler) ListByListing(c *gin.Context) {
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

	items, next, err := h.q.ListByListing(c.Request.Context(), listingID, userID, cursor, limit)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
		case errors.Is(err, queries.ErrBookingAccess):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case errors.Is(err, queries.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	resp := gin.H{"bookings": resdto.FromBookingList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Decide booking
// @Description Approve or reject a pending booking (the listing's landlord only)
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.DecideBookingRequest true "Decision"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/decision [post]
func (h *BookingHandler) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.DecideBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	if err := h.cmds.DecideBooking(c.Request.Context(), id, req.Decision, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrNotListingOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the listing owner can decide", nil)
		case errors.Is(err, booking.ErrAlreadyDecided):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking has already been decided", nil)
		case errors.Is(err, commands.ErrApprovalConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Dates conflict with an approved stay", nil)
		case errors.Is(err, booking.ErrInvalidDecision):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid decision", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancel an own booking before the stay starts (tenants only)
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	if err := h.cmds.CancelBooking(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrNotBookingTenant):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the booking's tenant can cancel", nil)
		case errors.Is(err, booking.ErrNotCancellable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking can no longer be cancelled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
