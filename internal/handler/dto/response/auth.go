package response

import (
	"github.com/google/uuid"

	"rental-listings/internal/usecase/queries"
)

type RegisterResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

type LoginResponse struct {
	AccessToken string                      `json:"access_token"`
	User        *queries.AuthorizedUserView `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
