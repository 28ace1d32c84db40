package commands

import (
	"context"
	"time"

	"rental-listings/internal/domain/booking"
	"rental-listings/internal/domain/user"
	"rental-listings/internal/infra"
	"rental-listings/internal/pkg/clock"
	"rental-listings/internal/pkg/errs"
	"rental-listings/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotTenant        = errs.New("only tenants can request bookings")
	ErrListingNotFound  = errs.New("listing not found")
	ErrListingInactive  = errs.New("listing is not accepting bookings")
	ErrDatesUnavailable = errs.New("requested dates are unavailable")
	ErrBookingNotFound  = errs.New("booking not found")
	ErrNotListingOwner  = errs.New("booking belongs to another landlord's listing")
	ErrNotBookingTenant = errs.New("booking belongs to another tenant")
	ErrApprovalConflict = errs.New("an overlapping booking is already approved")
)

type CreateBookingRequest struct {
	ListingID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type CreateBookingResult struct {
	BookingID uuid.UUID
}

type BookingCommands interface {
	RequestBooking(ctx context.Context, req CreateBookingRequest, tenantID uuid.UUID, role user.Role) (*CreateBookingResult, error)
	DecideBooking(ctx context.Context, bookingID uuid.UUID, decision string, landlordID uuid.UUID) error
	CancelBooking(ctx context.Context, bookingID uuid.UUID, tenantID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, clock: clk}
}

// RequestBooking creates a pending booking if the stay does not overlap
// any pending or approved booking of the same listing. The availability
// check and the insert run under the listing's write lock, so two
// overlapping requests can never both succeed.
func (uc *bookingUseCaseImpl) RequestBooking(ctx context.Context, req CreateBookingRequest, tenantID uuid.UUID, role user.Role) (*CreateBookingResult, error) {
	if role != user.RoleTenant {
		return nil, ErrNotTenant
	}

	period, err := booking.NewStayPeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.WithinListing(ctx, req.ListingID, func(ctx context.Context, tx shared.Tx) error {
		listingSnap, derr := tx.Reads().ListingByID(ctx, req.ListingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrListingNotFound
			}
			return derr
		}
		if !listingSnap.IsActive {
			return ErrListingInactive
		}

		b, derr := booking.NewBooking(req.ListingID, tenantID, period, uc.clock.Now())
		if derr != nil {
			return derr
		}

		blocking, derr := tx.Reads().BlockingPeriods(ctx, req.ListingID)
		if derr != nil {
			return derr
		}
		if booking.ConflictsWith(period, blocking) {
			return ErrDatesUnavailable
		}

		id, derr := tx.Bookings().Create(ctx, tx.DB(), b)
		if derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrDatesUnavailable
			}
			if infra.IsKind(derr, infra.KindForeignKeyViolated) {
				return ErrListingNotFound
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{BookingID: createdID}, nil
}

// DecideBooking approves or rejects a pending booking. Only the landlord
// owning the listing may decide; approval re-checks approved overlaps
// under the listing lock so racing approvals settle on exactly one winner.
func (uc *bookingUseCaseImpl) DecideBooking(ctx context.Context, bookingID uuid.UUID, decision string, landlordID uuid.UUID) error {
	d, err := booking.NewDecision(decision)
	if err != nil {
		return err
	}

	snap, err := uc.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	return uc.uow.WithinListing(ctx, snap.ListingID, func(ctx context.Context, tx shared.Tx) error {
		listingSnap, derr := tx.Reads().ListingByID(ctx, snap.ListingID)
		if derr != nil {
			return derr
		}
		if listingSnap.LandlordID != landlordID {
			return ErrNotListingOwner
		}

		b, derr := uc.reloadBooking(ctx, tx, bookingID)
		if derr != nil {
			return derr
		}

		if derr = b.Decide(d); derr != nil {
			return derr
		}

		if d == booking.DecisionApprove {
			approved, aerr := tx.Reads().ApprovedPeriods(ctx, snap.ListingID, bookingID)
			if aerr != nil {
				return aerr
			}
			if booking.ConflictsWith(b.Period(), approved) {
				return ErrApprovalConflict
			}
		}

		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, b.Status()); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrApprovalConflict
			}
			return derr
		}
		return nil
	})
}

// CancelBooking lets the requesting tenant withdraw a pending booking
// before the stay begins.
func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, tenantID uuid.UUID) error {
	snap, err := uc.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if snap.TenantID != tenantID {
		return ErrNotBookingTenant
	}

	return uc.uow.WithinListing(ctx, snap.ListingID, func(ctx context.Context, tx shared.Tx) error {
		b, derr := uc.reloadBooking(ctx, tx, bookingID)
		if derr != nil {
			return derr
		}

		if derr = b.Cancel(clock.Today(uc.clock)); derr != nil {
			return derr
		}

		return tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, b.Status())
	})
}

func (uc *bookingUseCaseImpl) loadBooking(ctx context.Context, bookingID uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, err := uc.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return snap, nil
}

// reloadBooking re-reads the booking inside the transaction so status
// checks see the state as of the listing lock acquisition.
func (uc *bookingUseCaseImpl) reloadBooking(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (*booking.Booking, error) {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	status := booking.Status(snap.Status)
	if !status.IsValid() {
		return nil, booking.ErrInvalidStatus
	}

	period := booking.ReconstructStayPeriod(snap.StartDate, snap.EndDate)
	return booking.ReconstructBooking(snap.ID, snap.ListingID, snap.TenantID, period, status, uc.clock.Now(), uc.clock.Now()), nil
}
