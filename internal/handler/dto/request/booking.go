package request

import (
	"time"

	"rental-listings/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

func (r *CreateBookingRequest) ToCommand(listingID uuid.UUID) (commands.CreateBookingRequest, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}

	return commands.CreateBookingRequest{
		ListingID: listingID,
		StartDate: start,
		EndDate:   end,
	}, nil
}

type DecideBookingRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}
