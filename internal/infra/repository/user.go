package repository

import (
	"context"

	"rental-listings/internal/domain/user"
	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (id, email, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createUserSQL,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.IsActive(),
	).Scan(&id)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

const updateLastLoginSQL = `
UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	tag, err := tx.Exec(ctx, updateLastLoginSQL, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
