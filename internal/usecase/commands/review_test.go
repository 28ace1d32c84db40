//go:build unit

package commands_test

import (
	"context"
	"testing"

	"rental-listings/internal/domain/booking"
	"rental-listings/internal/domain/listing"
	"rental-listings/internal/domain/review"
	"rental-listings/internal/domain/user"
	"rental-listings/internal/pkg/clock"
	"rental-listings/internal/usecase/commands"
	"rental-listings/internal/usecase/shared"
	"rental-listings/tests/common/builder"
	"rental-listings/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	store    *fake.Store
	uc       commands.ReviewCommands
	clk      *clock.MockClock
	tenantID uuid.UUID
	listing  *listing.Listing
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	clk := clock.NewMockClock(testNow)
	store := fake.NewStore()

	l, err := builder.NewListingBuilder().BuildDomain()
	require.NoError(t, err)
	store.AddListing(l)

	return &reviewFixture{
		store:    store,
		uc:       commands.NewReviewUseCase(fake.NewUnitOfWork(store), clk),
		clk:      clk,
		tenantID: uuid.New(),
		listing:  l,
	}
}

// completeStay seeds an approved booking whose checkout day is already
// behind the fixed test clock.
func (f *reviewFixture) completeStay(tenantID uuid.UUID) {
	f.store.AddBooking(&fake.BookingRecord{
		ID:        uuid.New(),
		ListingID: f.listing.ID(),
		TenantID:  tenantID,
		Period:    booking.ReconstructStayPeriod(day(-10), day(-5)),
		Status:    booking.StatusApproved,
		CreatedAt: testNow,
	})
}

func (f *reviewFixture) create(rating int, comment string) (*commands.CreateReviewResult, error) {
	return f.uc.CreateReview(context.Background(), commands.CreateReviewRequest{
		ListingID: f.listing.ID(),
		Rating:    rating,
		Comment:   comment,
	}, f.tenantID, user.RoleTenant)
}

func TestCreateReview(t *testing.T) {
	t.Run("tenant with a completed stay posts a review", func(t *testing.T) {
		f := newReviewFixture(t)
		f.completeStay(f.tenantID)

		result, err := f.create(4, "Quiet street, fast landlord responses")
		require.NoError(t, err)
		require.NotNil(t, result)

		snap := f.store.Review(result.ReviewID)
		require.NotNil(t, snap)
		assert.Equal(t, f.tenantID, snap.TenantID)
		assert.Equal(t, f.listing.ID(), snap.ListingID)
		assert.Equal(t, 4, snap.Rating)
	})

	t.Run("rejects non-tenant roles", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.uc.CreateReview(context.Background(), commands.CreateReviewRequest{
			ListingID: f.listing.ID(),
			Rating:    4,
			Comment:   "nice",
		}, uuid.New(), user.RoleLandlord)

		require.ErrorIs(t, err, commands.ErrNotTenant)
	})

	t.Run("rating out of range", func(t *testing.T) {
		f := newReviewFixture(t)
		f.completeStay(f.tenantID)

		for _, rating := range []int{0, 6, -1} {
			_, err := f.create(rating, "nope")
			require.ErrorIs(t, err, review.ErrInvalidRating)
		}
	})

	t.Run("unknown listing", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.uc.CreateReview(context.Background(), commands.CreateReviewRequest{
			ListingID: uuid.New(),
			Rating:    4,
			Comment:   "nice",
		}, f.tenantID, user.RoleTenant)

		require.ErrorIs(t, err, commands.ErrListingNotFound)
	})

	t.Run("no stay at all", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.create(5, "never actually stayed")
		require.ErrorIs(t, err, commands.ErrNotEligible)
	})

	t.Run("eligibility gate", func(t *testing.T) {
		cases := []struct {
			name   string
			status booking.Status
			start  int
			end    int
			errIs  error
		}{
			{name: "stay still in progress", status: booking.StatusApproved, start: -3, end: 2, errIs: commands.ErrNotEligible},
			{name: "stay not started", status: booking.StatusApproved, start: 5, end: 10, errIs: commands.ErrNotEligible},
			{name: "pending past stay", status: booking.StatusPending, start: -10, end: -5, errIs: commands.ErrNotEligible},
			{name: "rejected past stay", status: booking.StatusRejected, start: -10, end: -5, errIs: commands.ErrNotEligible},
			{name: "cancelled past stay", status: booking.StatusCancelled, start: -10, end: -5, errIs: commands.ErrNotEligible},
			{name: "approved completed stay", status: booking.StatusApproved, start: -10, end: -5},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				f := newReviewFixture(t)
				f.store.AddBooking(&fake.BookingRecord{
					ID:        uuid.New(),
					ListingID: f.listing.ID(),
					TenantID:  f.tenantID,
					Period:    booking.ReconstructStayPeriod(day(c.start), day(c.end)),
					Status:    c.status,
					CreatedAt: testNow,
				})

				_, err := f.create(4, "ok")
				if c.errIs == nil {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})

	t.Run("another tenant's completed stay does not qualify", func(t *testing.T) {
		f := newReviewFixture(t)
		f.completeStay(uuid.New())

		_, err := f.create(4, "ok")
		require.ErrorIs(t, err, commands.ErrNotEligible)
	})

	t.Run("one review per tenant and listing", func(t *testing.T) {
		f := newReviewFixture(t)
		f.completeStay(f.tenantID)

		_, err := f.create(4, "first impressions")
		require.NoError(t, err)

		_, err = f.create(5, "changed my mind")
		require.ErrorIs(t, err, commands.ErrDuplicateReview)
	})
}

func TestUpdateReview(t *testing.T) {
	seedReview := func(f *reviewFixture, tenantID uuid.UUID) uuid.UUID {
		id := uuid.New()
		f.store.AddReview(&shared.ReviewSnapshot{
			ID:        id,
			TenantID:  tenantID,
			ListingID: f.listing.ID(),
			Rating:    3,
			Comment:   "fine",
		})
		return id
	}

	t.Run("owner updates rating and comment", func(t *testing.T) {
		f := newReviewFixture(t)
		id := seedReview(f, f.tenantID)

		err := f.uc.UpdateReview(context.Background(), id, commands.UpdateReviewRequest{
			Rating:  5,
			Comment: "grew on me",
		}, f.tenantID)
		require.NoError(t, err)

		snap := f.store.Review(id)
		assert.Equal(t, 5, snap.Rating)
		assert.Equal(t, "grew on me", snap.Comment)
	})

	t.Run("unknown review", func(t *testing.T) {
		f := newReviewFixture(t)

		err := f.uc.UpdateReview(context.Background(), uuid.New(), commands.UpdateReviewRequest{
			Rating:  5,
			Comment: "x",
		}, f.tenantID)
		require.ErrorIs(t, err, commands.ErrReviewNotFound)
	})

	t.Run("not the author", func(t *testing.T) {
		f := newReviewFixture(t)
		id := seedReview(f, f.tenantID)

		err := f.uc.UpdateReview(context.Background(), id, commands.UpdateReviewRequest{
			Rating:  1,
			Comment: "sabotage",
		}, uuid.New())
		require.ErrorIs(t, err, commands.ErrReviewNotOwned)
		assert.Equal(t, 3, f.store.Review(id).Rating)
	})

	t.Run("invalid rating", func(t *testing.T) {
		f := newReviewFixture(t)
		id := seedReview(f, f.tenantID)

		err := f.uc.UpdateReview(context.Background(), id, commands.UpdateReviewRequest{
			Rating:  9,
			Comment: "x",
		}, f.tenantID)
		require.ErrorIs(t, err, review.ErrInvalidRating)
	})
}

func TestDeleteReview(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		f := newReviewFixture(t)
		id := uuid.New()
		f.store.AddReview(&shared.ReviewSnapshot{ID: id, TenantID: f.tenantID, ListingID: f.listing.ID(), Rating: 3})

		err := f.uc.DeleteReview(context.Background(), id, f.tenantID)
		require.NoError(t, err)
		assert.Nil(t, f.store.Review(id))
	})

	t.Run("unknown review", func(t *testing.T) {
		f := newReviewFixture(t)

		err := f.uc.DeleteReview(context.Background(), uuid.New(), f.tenantID)
		require.ErrorIs(t, err, commands.ErrReviewNotFound)
	})

	t.Run("not the author", func(t *testing.T) {
		f := newReviewFixture(t)
		id := uuid.New()
		f.store.AddReview(&shared.ReviewSnapshot{ID: id, TenantID: f.tenantID, ListingID: f.listing.ID(), Rating: 3})

		err := f.uc.DeleteReview(context.Background(), id, uuid.New())
		require.ErrorIs(t, err, commands.ErrReviewNotOwned)
		assert.NotNil(t, f.store.Review(id))
	})
}
