package shared

import (
	"context"
	"time"

	"rental-listings/internal/domain/booking"
	"rental-listings/internal/domain/listing"
	"rental-listings/internal/domain/review"
	"rental-listings/internal/domain/user"
	"rental-listings/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinListing: Like Within but serializes all writers of one listing's
	// calendar, so checking availability and inserting a booking is atomic
	WithinListing(ctx context.Context, listingID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Listings() ListingRepository
	Reviews() ReviewRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BlockingPeriods returns the stay periods of all pending and approved
	// bookings for a listing. Rejected and cancelled bookings never block.
	BlockingPeriods(ctx context.Context, listingID uuid.UUID) ([]booking.StayPeriod, error)
	// ApprovedPeriods returns the stay periods of approved bookings for a
	// listing, excluding one booking (the one about to be approved).
	ApprovedPeriods(ctx context.Context, listingID, excludeBookingID uuid.UUID) ([]booking.StayPeriod, error)
	HasCompletedApprovedStay(ctx context.Context, tenantID, listingID uuid.UUID, now time.Time) (bool, error)
	HasReview(ctx context.Context, tenantID, listingID uuid.UUID) (bool, error)
	ReviewByID(ctx context.Context, id uuid.UUID) (*ReviewSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
}

type ListingRepository interface {
	Create(ctx context.Context, tx db.DBTX, l *listing.Listing) (uuid.UUID, error)
	// FindByID loads the full aggregate for write-side mutation.
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*listing.Listing, error)
	Update(ctx context.Context, tx db.DBTX, l *listing.Listing) error
	SetActive(ctx context.Context, tx db.DBTX, id uuid.UUID, active bool) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, rev *review.Review) error
	Delete(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
