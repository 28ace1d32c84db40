package response

import (
	"time"

	"github.com/google/uuid"

	"rental-listings/internal/usecase/queries"
)

type ListingResponse struct {
	ID            uuid.UUID `json:"id"`
	LandlordID    uuid.UUID `json:"landlord_id"`
	LandlordEmail string    `json:"landlord_email"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PriceCents    int64     `json:"price_cents"`
	Rooms         int32     `json:"rooms"`
	HousingType   string    `json:"housing_type"`
	ContactInfo   string    `json:"contact_info"`
	IsActive      bool      `json:"is_active"`
	ReviewCount   int32     `json:"review_count"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListingListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	PriceCents    int64     `json:"price_cents"`
	Rooms         int32     `json:"rooms"`
	HousingType   string    `json:"housing_type"`
	ReviewCount   int32     `json:"review_count"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromListingView(v *queries.ListingView) *ListingResponse {
	return &ListingResponse{
		ID:            v.ID,
		LandlordID:    v.LandlordID,
		LandlordEmail: v.LandlordEmail,
		Title:         v.Title,
		Description:   v.Description,
		Location:      v.Location,
		PriceCents:    v.PriceCents,
		Rooms:         v.Rooms,
		HousingType:   v.HousingType,
		ContactInfo:   v.ContactInfo,
		IsActive:      v.IsActive,
		ReviewCount:   v.ReviewCount,
		AverageRating: v.AverageRating,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromListingList(items []*queries.ListingListItem) []*ListingListItemResponse {
	res := make([]*ListingListItemResponse, len(items))
	for i, it := range items {
		res[i] = &ListingListItemResponse{
			ID:            it.ID,
			Title:         it.Title,
			Location:      it.Location,
			PriceCents:    it.PriceCents,
			Rooms:         it.Rooms,
			HousingType:   it.HousingType,
			ReviewCount:   it.ReviewCount,
			AverageRating: it.AverageRating,
			CreatedAt:     it.CreatedAt,
		}
	}
	return res
}
