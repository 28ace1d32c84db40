package response

import (
	"time"

	"github.com/google/uuid"

	"rental-listings/internal/usecase/queries"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	TenantID     uuid.UUID `json:"tenant_id"`
	TenantEmail  string    `json:"tenant_email"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BookingListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:           v.ID,
		ListingID:    v.ListingID,
		ListingTitle: v.ListingTitle,
		TenantID:     v.TenantID,
		TenantEmail:  v.TenantEmail,
		StartDate:    v.StartDate.Format(dateLayout),
		EndDate:      v.EndDate.Format(dateLayout),
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromBookingList(items []*queries.BookingListItem) []*BookingListItemResponse {
	res := make([]*BookingListItemResponse, len(items))
	for i, it := range items {
		res[i] = &BookingListItemResponse{
			ID:           it.ID,
			ListingID:    it.ListingID,
			ListingTitle: it.ListingTitle,
			StartDate:    it.StartDate.Format(dateLayout),
			EndDate:      it.EndDate.Format(dateLayout),
			Status:       it.Status,
			CreatedAt:    it.CreatedAt,
		}
	}
	return res
}
