package commands

import (
	"context"

	domlisting "rental-listings/internal/domain/listing"
	"rental-listings/internal/domain/user"
	"rental-listings/internal/infra"
	"rental-listings/internal/pkg/errs"
	"rental-listings/internal/pkg/patch"
	"rental-listings/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotLandlord        = errs.New("only landlords can manage listings")
	ErrListingNotOwned    = errs.New("listing owned by another landlord")
	ErrListingHasBookings = errs.New("listing still has bookings")
)

type CreateListingRequest struct {
	Title       string
	Description string
	Location    string
	PriceCents  int64
	Rooms       int
	HousingType string
	ContactInfo string
}

type UpdateListingRequest struct {
	Title       *string
	Description *string
	Location    *string
	PriceCents  *int64
	Rooms       *int
	HousingType *string
	ContactInfo *string
}

type CreateListingResult struct {
	ListingID uuid.UUID
}

type ToggleActiveResult struct {
	IsActive bool
}

type ListingCommands interface {
	CreateListing(ctx context.Context, req CreateListingRequest, landlordID uuid.UUID, role user.Role) (*CreateListingResult, error)
	UpdateListing(ctx context.Context, listingID uuid.UUID, req UpdateListingRequest, actorID uuid.UUID) error
	ToggleListingActive(ctx context.Context, listingID uuid.UUID, actorID uuid.UUID) (*ToggleActiveResult, error)
	DeleteListing(ctx context.Context, listingID uuid.UUID, actorID uuid.UUID) error
}

type listingUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewListingUseCase(uow shared.UnitOfWork) ListingCommands {
	return &listingUseCaseImpl{uow: uow}
}

func (uc *listingUseCaseImpl) CreateListing(ctx context.Context, req CreateListingRequest, landlordID uuid.UUID, role user.Role) (*CreateListingResult, error) {
	if role != user.RoleLandlord {
		return nil, ErrNotLandlord
	}

	housingType, err := domlisting.NewHousingType(req.HousingType)
	if err != nil {
		return nil, err
	}

	l, err := domlisting.NewListing(landlordID, req.Title, req.Description, req.Location, req.PriceCents, req.Rooms, housingType, req.ContactInfo)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Listings().Create(ctx, tx.DB(), l)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateListingResult{ListingID: createdID}, nil
}

func (uc *listingUseCaseImpl) UpdateListing(ctx context.Context, listingID uuid.UUID, req UpdateListingRequest, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, derr := uc.loadOwnedListing(ctx, tx, listingID, actorID)
		if derr != nil {
			return derr
		}

		housingType, derr := domlisting.NewHousingType(patch.Coalesce(req.HousingType, l.HousingType().String()))
		if derr != nil {
			return derr
		}

		derr = l.Update(
			patch.Coalesce(req.Title, l.Title()),
			patch.Coalesce(req.Description, l.Description()),
			patch.Coalesce(req.Location, l.Location()),
			patch.Coalesce(req.PriceCents, l.PriceCents()),
			patch.Coalesce(req.Rooms, l.Rooms()),
			housingType,
			patch.Coalesce(req.ContactInfo, l.ContactInfo()),
		)
		if derr != nil {
			return derr
		}

		return tx.Listings().Update(ctx, tx.DB(), l)
	})
}

func (uc *listingUseCaseImpl) ToggleListingActive(ctx context.Context, listingID uuid.UUID, actorID uuid.UUID) (*ToggleActiveResult, error) {
	var result ToggleActiveResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, derr := uc.loadOwnedListing(ctx, tx, listingID, actorID)
		if derr != nil {
			return derr
		}

		l.ToggleActive()
		result.IsActive = l.IsActive()
		return tx.Listings().SetActive(ctx, tx.DB(), listingID, l.IsActive())
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *listingUseCaseImpl) DeleteListing(ctx context.Context, listingID uuid.UUID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := uc.loadOwnedListing(ctx, tx, listingID, actorID); derr != nil {
			return derr
		}
		if derr := tx.Listings().Delete(ctx, tx.DB(), listingID); derr != nil {
			if infra.IsKind(derr, infra.KindForeignKeyViolated) {
				return ErrListingHasBookings
			}
			return derr
		}
		return nil
	})
}

func (uc *listingUseCaseImpl) loadOwnedListing(ctx context.Context, tx shared.Tx, listingID, actorID uuid.UUID) (*domlisting.Listing, error) {
	l, err := tx.Listings().FindByID(ctx, tx.DB(), listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !l.IsOwnedBy(actorID) {
		return nil, ErrListingNotOwned
	}
	return l, nil
}
