package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStayPeriod = errors.New("invalid stay period")
	ErrStartNotInFuture  = errors.New("stay must start after today")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidDecision   = errors.New("invalid decision")
	ErrAlreadyDecided    = errors.New("booking is no longer pending")
	ErrNotCancellable    = errors.New("booking cannot be cancelled")
)

// Booking is a tenant's request to reserve a listing for a stay period.
// Records are never deleted; rejection and cancellation are status
// transitions so the history stays available for audit and overlap
// bookkeeping.
type Booking struct {
	id        uuid.UUID
	listingID uuid.UUID
	tenantID  uuid.UUID
	period    StayPeriod
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking validates the request-time rules: well-formed period and a
// start strictly after today. The booking always begins pending.
func NewBooking(listingID, tenantID uuid.UUID, period StayPeriod, today time.Time) (*Booking, error) {
	if err := period.ValidateStartAfter(today); err != nil {
		return nil, err
	}
	return &Booking{
		id:        uuid.New(),
		listingID: listingID,
		tenantID:  tenantID,
		period:    period,
		status:    StatusPending,
	}, nil
}

func ReconstructBooking(id, listingID, tenantID uuid.UUID, period StayPeriod, status Status, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		listingID: listingID,
		tenantID:  tenantID,
		period:    period,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ListingID() uuid.UUID { return b.listingID }
func (b *Booking) TenantID() uuid.UUID  { return b.tenantID }
func (b *Booking) Period() StayPeriod   { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) IsPending() bool  { return b.status == StatusPending }
func (b *Booking) IsApproved() bool { return b.status == StatusApproved }

// Decide applies a landlord verdict. Only pending bookings can be
// decided; the overlap re-check for approvals happens in the store's
// atomic section, not here.
func (b *Booking) Decide(d Decision) error {
	if !d.IsValid() {
		return ErrInvalidDecision
	}
	next := d.Status()
	if !b.status.CanTransitionTo(next) {
		return ErrAlreadyDecided
	}
	b.status = next
	return nil
}

// Cancel withdraws a pending booking. A booking whose stay has started
// (or any non-pending booking) cannot be cancelled.
func (b *Booking) Cancel(today time.Time) error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return ErrNotCancellable
	}
	if b.period.HasStarted(today) {
		return ErrNotCancellable
	}
	b.status = StatusCancelled
	return nil
}

// ConflictsWith reports whether the candidate period overlaps any of the
// given periods. All call sites funnel through StayPeriod.Overlaps.
func ConflictsWith(candidate StayPeriod, existing []StayPeriod) bool {
	for _, p := range existing {
		if candidate.Overlaps(p) {
			return true
		}
	}
	return false
}
