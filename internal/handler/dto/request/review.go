package request

import (
	"github.com/google/uuid"

	"rental-listings/internal/usecase/commands"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

func (r *CreateReviewRequest) ToCommand(listingID uuid.UUID) commands.CreateReviewRequest {
	return commands.CreateReviewRequest{
		ListingID: listingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

func (r *UpdateReviewRequest) ToCommand() commands.UpdateReviewRequest {
	return commands.UpdateReviewRequest{
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}
