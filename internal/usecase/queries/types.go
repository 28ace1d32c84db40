package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type ListingView struct {
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

type ListingListItem struct {
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

type BookingView struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	TenantID     uuid.UUID `json:"tenant_id"`
	TenantEmail  string    `json:"tenant_email"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewView struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	TenantEmail string    `json:"tenant_email"`
	ListingID   uuid.UUID `json:"listing_id"`
	Rating      int32     `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReviewListItem struct {
	ID          uuid.UUID `json:"id"`
	TenantEmail string    `json:"tenant_email"`
	Rating      int32     `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListingRatingStats struct {
	ListingID     uuid.UUID `json:"listing_id"`
	TotalReviews  int32     `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	RatingCounts  [5]int32  `json:"rating_counts"`
}
