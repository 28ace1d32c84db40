package request

import (
	"rental-listings/internal/usecase/commands"
	"rental-listings/internal/usecase/queries"
)

type CreateListingRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=5000"`
	Location    string `json:"location" binding:"required"`
	PriceCents  int64  `json:"price_cents" binding:"required,min=0"`
	Rooms       int    `json:"rooms" binding:"required,min=1"`
	HousingType string `json:"housing_type" binding:"required,oneof=apartment house studio"`
	ContactInfo string `json:"contact_info" binding:"max=500"`
}

func (r *CreateListingRequest) ToCommand() commands.CreateListingRequest {
	return commands.CreateListingRequest{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		PriceCents:  r.PriceCents,
		Rooms:       r.Rooms,
		HousingType: r.HousingType,
		ContactInfo: r.ContactInfo,
	}
}

type UpdateListingRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Location    *string `json:"location" binding:"omitempty"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,min=0"`
	Rooms       *int    `json:"rooms" binding:"omitempty,min=1"`
	HousingType *string `json:"housing_type" binding:"omitempty,oneof=apartment house studio"`
	ContactInfo *string `json:"contact_info" binding:"omitempty,max=500"`
}

func (r *UpdateListingRequest) ToCommand() commands.UpdateListingRequest {
	return commands.UpdateListingRequest{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		PriceCents:  r.PriceCents,
		Rooms:       r.Rooms,
		HousingType: r.HousingType,
		ContactInfo: r.ContactInfo,
	}
}

type SearchListingsRequest struct {
	Keyword     *string `form:"keyword"`
	Location    *string `form:"location"`
	MinPrice    *int64  `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice    *int64  `form:"max_price" binding:"omitempty,min=0"`
	MinRooms    *int    `form:"min_rooms" binding:"omitempty,min=1"`
	MaxRooms    *int    `form:"max_rooms" binding:"omitempty,min=1"`
	HousingType *string `form:"housing_type" binding:"omitempty,oneof=apartment house studio"`
	Sort        string  `form:"sort" binding:"omitempty,oneof=newest price_asc price_desc"`
	After       string  `form:"after"`
	Limit       int     `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (r *SearchListingsRequest) ToFilters() (queries.SearchFilters, error) {
	sort, err := queries.ParseSort(r.Sort)
	if err != nil {
		return queries.SearchFilters{}, err
	}
	return queries.SearchFilters{
		Keyword:       r.Keyword,
		Location:      r.Location,
		MinPriceCents: r.MinPrice,
		MaxPriceCents: r.MaxPrice,
		MinRooms:      r.MinRooms,
		MaxRooms:      r.MaxRooms,
		HousingType:   r.HousingType,
		Sort:          sort,
	}, nil
}
