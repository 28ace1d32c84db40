package request

import (
	"rental-listings/internal/usecase/commands"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=tenant landlord"`
}

func (r *RegisterRequest) ToCommand() commands.RegisterRequest {
	return commands.RegisterRequest{
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToCommand() commands.LoginRequest {
	return commands.LoginRequest{
		Email:    r.Email,
		Password: r.Password,
	}
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
