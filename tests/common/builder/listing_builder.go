//go:build unit || e2e

package builder

import (
	"time"

	domlisting "rental-listings/internal/domain/listing"
	reqdto "rental-listings/internal/handler/dto/request"
	"rental-listings/internal/usecase/queries"
	"rental-listings/internal/usecase/shared"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	ID            uuid.UUID
	LandlordID    uuid.UUID
	LandlordEmail string
	Title         string
	Description   string
	Location      string
	PriceCents    int64
	Rooms         int
	HousingType   string
	ContactInfo   string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewListingBuilder() *ListingBuilder {
	now := time.Now()
	return &ListingBuilder{
		ID:            uuid.New(),
		LandlordID:    uuid.New(),
		LandlordEmail: "landlord@example.com",
		Title:         "Sunny two-room flat",
		Description:   "Close to the city centre",
		Location:      "Berlin",
		PriceCents:    95_000,
		Rooms:         2,
		HousingType:   "apartment",
		ContactInfo:   "landlord@example.com",
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *ListingBuilder) WithLandlordID(id uuid.UUID) *ListingBuilder {
	b.LandlordID = id
	return b
}

func (b *ListingBuilder) WithTitle(title string) *ListingBuilder {
	b.Title = title
	return b
}

func (b *ListingBuilder) WithPriceCents(price int64) *ListingBuilder {
	b.PriceCents = price
	return b
}

func (b *ListingBuilder) WithHousingType(ht string) *ListingBuilder {
	b.HousingType = ht
	return b
}

func (b *ListingBuilder) Inactive() *ListingBuilder {
	b.IsActive = false
	return b
}

func (b *ListingBuilder) BuildDomain() (*domlisting.Listing, error) {
	ht, err := domlisting.NewHousingType(b.HousingType)
	if err != nil {
		return nil, err
	}
	return domlisting.NewListing(b.LandlordID, b.Title, b.Description, b.Location, b.PriceCents, b.Rooms, ht, b.ContactInfo)
}

func (b *ListingBuilder) BuildCreateRequestDTO() reqdto.CreateListingRequest {
	return reqdto.CreateListingRequest{
		Title:       b.Title,
		Description: b.Description,
		Location:    b.Location,
		PriceCents:  b.PriceCents,
		Rooms:       b.Rooms,
		HousingType: b.HousingType,
		ContactInfo: b.ContactInfo,
	}
}

func (b *ListingBuilder) BuildViewQuery() *queries.ListingView {
	return &queries.ListingView{
		ID:            b.ID,
		LandlordID:    b.LandlordID,
		LandlordEmail: b.LandlordEmail,
		Title:         b.Title,
		Description:   b.Description,
		Location:      b.Location,
		PriceCents:    b.PriceCents,
		Rooms:         int32(b.Rooms),
		HousingType:   b.HousingType,
		ContactInfo:   b.ContactInfo,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (b *ListingBuilder) BuildListItem() *queries.ListingListItem {
	return &queries.ListingListItem{
		ID:          b.ID,
		Title:       b.Title,
		Location:    b.Location,
		PriceCents:  b.PriceCents,
		Rooms:       int32(b.Rooms),
		HousingType: b.HousingType,
		CreatedAt:   b.CreatedAt,
	}
}

func (b *ListingBuilder) BuildSnapshot() *shared.ListingSnapshot {
	return &shared.ListingSnapshot{
		ID:         b.ID,
		LandlordID: b.LandlordID,
		Title:      b.Title,
		IsActive:   b.IsActive,
	}
}
