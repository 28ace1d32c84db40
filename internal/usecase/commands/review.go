package commands

import (
	"context"

	domreview "rental-listings/internal/domain/review"
	"rental-listings/internal/domain/user"
	"rental-listings/internal/infra"
	"rental-listings/internal/pkg/clock"
	"rental-listings/internal/pkg/errs"
	"rental-listings/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound  = errs.New("review not found")
	ErrReviewNotOwned  = errs.New("review not owned by user")
	ErrNotEligible     = errs.New("no completed approved stay for this listing")
	ErrDuplicateReview = errs.New("listing already reviewed by this tenant")
)

type CreateReviewRequest struct {
	ListingID uuid.UUID
	Rating    int
	Comment   string
}

type UpdateReviewRequest struct {
	Rating  int
	Comment string
}

type CreateReviewResult struct {
	ReviewID uuid.UUID
}

type ReviewCommands interface {
	CreateReview(ctx context.Context, req CreateReviewRequest, tenantID uuid.UUID, role user.Role) (*CreateReviewResult, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, req UpdateReviewRequest, actorID uuid.UUID) error
	DeleteReview(ctx context.Context, reviewID uuid.UUID, actorID uuid.UUID) error
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewUseCase(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, clock: clk}
}

// CreateReview posts a review if the tenant has a completed approved stay
// at the listing and has not reviewed it before. The duplicate check is
// backed by a unique constraint, so a racing duplicate still fails.
func (uc *reviewUseCaseImpl) CreateReview(ctx context.Context, req CreateReviewRequest, tenantID uuid.UUID, role user.Role) (*CreateReviewResult, error) {
	if role != user.RoleTenant {
		return nil, ErrNotTenant
	}

	rev, err := domreview.NewReview(tenantID, req.ListingID, req.Rating, req.Comment, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().ListingByID(ctx, req.ListingID); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrListingNotFound
			}
			return derr
		}

		input := domreview.EligibilityInput{
			TenantID:  tenantID,
			ListingID: req.ListingID,
			Now:       uc.clock.Now(),
		}
		if derr := uc.canPostReview(ctx, tx, input); derr != nil {
			return derr
		}

		id, derr := tx.Reviews().Create(ctx, tx.DB(), rev)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrDuplicateReview
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateReviewResult{ReviewID: createdID}, nil
}

func (uc *reviewUseCaseImpl) UpdateReview(ctx context.Context, reviewID uuid.UUID, req UpdateReviewRequest, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := uc.loadReview(ctx, tx, reviewID)
		if derr != nil {
			return derr
		}
		if snap.TenantID != actorID {
			return ErrReviewNotOwned
		}

		rating, derr := domreview.NewRating(req.Rating)
		if derr != nil {
			return derr
		}
		comment, derr := domreview.NewComment(req.Comment)
		if derr != nil {
			return derr
		}

		agg := domreview.ReconstructReview(snap.ID, snap.TenantID, snap.ListingID, rating, comment, uc.clock.Now(), uc.clock.Now())
		return tx.Reviews().Update(ctx, tx.DB(), agg)
	})
}

func (uc *reviewUseCaseImpl) DeleteReview(ctx context.Context, reviewID uuid.UUID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := uc.loadReview(ctx, tx, reviewID)
		if derr != nil {
			return derr
		}
		if snap.TenantID != actorID {
			return ErrReviewNotOwned
		}
		return tx.Reviews().Delete(ctx, tx.DB(), reviewID)
	})
}

func (uc *reviewUseCaseImpl) canPostReview(ctx context.Context, tx shared.Tx, input domreview.EligibilityInput) error {
	eligible, err := tx.Reads().HasCompletedApprovedStay(ctx, input.TenantID, input.ListingID, input.Now)
	if err != nil {
		return err
	}
	if !eligible {
		return ErrNotEligible
	}

	reviewed, err := tx.Reads().HasReview(ctx, input.TenantID, input.ListingID)
	if err != nil {
		return err
	}
	if reviewed {
		return ErrDuplicateReview
	}
	return nil
}

func (uc *reviewUseCaseImpl) loadReview(ctx context.Context, tx shared.Tx, reviewID uuid.UUID) (*shared.ReviewSnapshot, error) {
	snap, err := tx.Reads().ReviewByID(ctx, reviewID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return snap, nil
}
