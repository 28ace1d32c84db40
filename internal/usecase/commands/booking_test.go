//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"rental-listings/internal/domain/booking"
	"rental-listings/internal/domain/listing"
	"rental-listings/internal/domain/user"
	"rental-listings/internal/pkg/clock"
	"rental-listings/internal/usecase/commands"
	"rental-listings/tests/common/builder"
	"rental-listings/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed wall clock for every scenario: bookings reason about "today" at
// day granularity, so tests pin it.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type bookingFixture struct {
	store      *fake.Store
	uc         commands.BookingCommands
	clk        *clock.MockClock
	landlordID uuid.UUID
	tenantID   uuid.UUID
	listing    *listing.Listing
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	clk := clock.NewMockClock(testNow)
	store := fake.NewStore()
	landlordID := uuid.New()

	l, err := builder.NewListingBuilder().WithLandlordID(landlordID).BuildDomain()
	require.NoError(t, err)
	store.AddListing(l)

	return &bookingFixture{
		store:      store,
		uc:         commands.NewBookingUseCase(fake.NewUnitOfWork(store), clk),
		clk:        clk,
		landlordID: landlordID,
		tenantID:   uuid.New(),
		listing:    l,
	}
}

// day returns midnight UTC n days after the fixed test day.
func day(n int) time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func (f *bookingFixture) request(start, end time.Time) (*commands.CreateBookingResult, error) {
	return f.uc.RequestBooking(context.Background(), commands.CreateBookingRequest{
		ListingID: f.listing.ID(),
		StartDate: start,
		EndDate:   end,
	}, f.tenantID, user.RoleTenant)
}

func (f *bookingFixture) seedBooking(tenantID uuid.UUID, start, end time.Time, status booking.Status) uuid.UUID {
	id := uuid.New()
	f.store.AddBooking(&fake.BookingRecord{
		ID:        id,
		ListingID: f.listing.ID(),
		TenantID:  tenantID,
		Period:    booking.ReconstructStayPeriod(start, end),
		Status:    status,
		CreatedAt: testNow,
	})
	return id
}

func TestRequestBooking(t *testing.T) {
	t.Run("creates a pending booking", func(t *testing.T) {
		f := newBookingFixture(t)

		result, err := f.request(day(7), day(12))
		require.NoError(t, err)
		require.NotNil(t, result)

		rec := f.store.Booking(result.BookingID)
		require.NotNil(t, rec)
		assert.Equal(t, booking.StatusPending, rec.Status)
		assert.Equal(t, f.tenantID, rec.TenantID)
		assert.Equal(t, day(7), rec.Period.Start())
		assert.Equal(t, day(12), rec.Period.End())
	})

	t.Run("rejects non-tenant roles", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.uc.RequestBooking(context.Background(), commands.CreateBookingRequest{
			ListingID: f.listing.ID(),
			StartDate: day(7),
			EndDate:   day(12),
		}, f.landlordID, user.RoleLandlord)

		require.ErrorIs(t, err, commands.ErrNotTenant)
	})

	t.Run("unknown listing", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.uc.RequestBooking(context.Background(), commands.CreateBookingRequest{
			ListingID: uuid.New(),
			StartDate: day(7),
			EndDate:   day(12),
		}, f.tenantID, user.RoleTenant)

		require.ErrorIs(t, err, commands.ErrListingNotFound)
	})

	t.Run("inactive listing", func(t *testing.T) {
		f := newBookingFixture(t)
		f.listing.ToggleActive()

		_, err := f.request(day(7), day(12))
		require.ErrorIs(t, err, commands.ErrListingInactive)
	})

	t.Run("period validation", func(t *testing.T) {
		cases := []struct {
			name  string
			start time.Time
			end   time.Time
			errIs error
		}{
			{name: "end before start", start: day(10), end: day(7), errIs: booking.ErrInvalidStayPeriod},
			{name: "zero nights", start: day(7), end: day(7), errIs: booking.ErrInvalidStayPeriod},
			{name: "starts today", start: day(0), end: day(3), errIs: booking.ErrStartNotInFuture},
			{name: "starts in the past", start: day(-2), end: day(3), errIs: booking.ErrStartNotInFuture},
			{name: "starts tomorrow", start: day(1), end: day(3)},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				f := newBookingFixture(t)
				_, err := f.request(c.start, c.end)
				if c.errIs == nil {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})

	t.Run("overlap with existing bookings", func(t *testing.T) {
		cases := []struct {
			name     string
			existing booking.Status
			start    time.Time
			end      time.Time
			errIs    error
		}{
			{name: "pending booking blocks", existing: booking.StatusPending, start: day(9), end: day(14), errIs: commands.ErrDatesUnavailable},
			{name: "approved booking blocks", existing: booking.StatusApproved, start: day(9), end: day(14), errIs: commands.ErrDatesUnavailable},
			{name: "contained stay blocks", existing: booking.StatusApproved, start: day(8), end: day(9), errIs: commands.ErrDatesUnavailable},
			{name: "rejected booking does not block", existing: booking.StatusRejected, start: day(9), end: day(14)},
			{name: "cancelled booking does not block", existing: booking.StatusCancelled, start: day(9), end: day(14)},
			{name: "checkout day touch is free", existing: booking.StatusApproved, start: day(12), end: day(15)},
			{name: "checkin day touch is free", existing: booking.StatusApproved, start: day(3), end: day(7)},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				f := newBookingFixture(t)
				f.seedBooking(uuid.New(), day(7), day(12), c.existing)

				_, err := f.request(c.start, c.end)
				if c.errIs == nil {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})

	t.Run("concurrent overlapping requests settle on one winner", func(t *testing.T) {
		f := newBookingFixture(t)

		const n = 8
		errCh := make(chan error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.uc.RequestBooking(context.Background(), commands.CreateBookingRequest{
					ListingID: f.listing.ID(),
					StartDate: day(7),
					EndDate:   day(12),
				}, uuid.New(), user.RoleTenant)
				errCh <- err
			}()
		}
		wg.Wait()
		close(errCh)

		succeeded := 0
		for err := range errCh {
			if err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, commands.ErrDatesUnavailable)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, f.store.BookingCountByStatus(f.listing.ID(), booking.StatusPending))
	})
}

func TestDecideBooking(t *testing.T) {
	t.Run("approve and reject", func(t *testing.T) {
		cases := []struct {
			name     string
			decision string
			want     booking.Status
		}{
			{name: "approve", decision: "approve", want: booking.StatusApproved},
			{name: "reject", decision: "reject", want: booking.StatusRejected},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				f := newBookingFixture(t)
				id := f.seedBooking(f.tenantID, day(7), day(12), booking.StatusPending)

				err := f.uc.DecideBooking(context.Background(), id, c.decision, f.landlordID)
				require.NoError(t, err)
				assert.Equal(t, c.want, f.store.Booking(id).Status)
			})
		}
	})

	t.Run("unknown decision", func(t *testing.T) {
		f := newBookingFixture(t)
		id := f.seedBooking(f.tenantID, day(7), day(12), booking.StatusPending)

		err := f.uc.DecideBooking(context.Background(), id, "maybe", f.landlordID)
		require.ErrorIs(t, err, booking.ErrInvalidDecision)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		err := f.uc.DecideBooking(context.Background(), uuid.New(), "approve", f.landlordID)
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("another landlord's listing", func(t *testing.T) {
		f := newBookingFixture(t)
		id := f.seedBooking(f.tenantID, day(7), day(12), booking.StatusPending)

		err := f.uc.DecideBooking(context.Background(), id, "approve", uuid.New())
		require.ErrorIs(t, err, commands.ErrNotListingOwner)
		assert.Equal(t, booking.StatusPending, f.store.Booking(id).Status)
	})

	t.Run("already decided", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusApproved, booking.StatusRejected, booking.StatusCancelled} {
			t.Run(status.String(), func(t *testing.T) {
				f := newBookingFixture(t)
				id := f.seedBooking(f.tenantID, day(7), day(12), status)

				err := f.uc.DecideBooking(context.Background(), id, "approve", f.landlordID)
				require.ErrorIs(t, err, booking.ErrAlreadyDecided)
				assert.Equal(t, status, f.store.Booking(id).Status)
			})
		}
	})

	t.Run("approval conflicts with an approved overlap", func(t *testing.T) {
		f := newBookingFixture(t)
		f.seedBooking(uuid.New(), day(9), day(14), booking.StatusApproved)
		id := f.seedBooking(f.tenantID, day(7), day(12), booking.StatusPending)

		err := f.uc.DecideBooking(context.Background(), id, "approve", f.landlordID)
		require.ErrorIs(t, err, commands.ErrApprovalConflict)
		assert.Equal(t, booking.StatusPending, f.store.Booking(id).Status)
	})

	t.Run("rejection ignores approved overlaps", func(t *testing.T) {
		f := newBookingFixture(t)
		f.seedBooking(uuid.New(), day(9), day(14), booking.StatusApproved)
		id := f.seedBooking(f.tenantID, day(7), day(12), booking.StatusPending)

		err := f.uc.DecideBooking(context.Background(), id, "reject", f.landlordID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusRejected, f.store.Booking(id).Status)
	})

	t.Run("racing approvals of overlapping stays pick one winner", func(t *testing.T) {
		f := newBookingFixture(t)
		first := f.seedBooking(uuid.New(), day(7), day(12), booking.StatusPending)
		second := f.seedBooking(uuid.New(), day(10), day(15), booking.StatusPending)

		errCh := make(chan error, 2)
		var wg sync.WaitGroup
		for _, id := range []uuid.UUID{first, second} {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				errCh <- f.uc.DecideBooking(context.Background(), id, "approve", f.landlordID)
			}(id)
		}
		wg.Wait()
		close(errCh)

		approved := 0
		for err := range errCh {
			if err == nil {
				approved++
			} else {
				require.ErrorIs(t, err, commands.ErrApprovalConflict)
			}
		}
		assert.Equal(t, 1, approved)
		assert.Equal(t, 1, f.store.BookingCountByStatus(f.listing.ID(), booking.StatusApproved))
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("tenant cancels a pending booking", func(t *testing.T) {
		f := newBookingFixture(t)
		id := f.seedBooking(f.tenantID, day(7), day(12), booking.StatusPending)

		err := f.uc.CancelBooking(context.Background(), id, f.tenantID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, f.store.Booking(id).Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		err := f.uc.CancelBooking(context.Background(), uuid.New(), f.tenantID)
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("another tenant's booking", func(t *testing.T) {
		f := newBookingFixture(t)
		id := f.seedBooking(f.tenantID, day(7), day(12), booking.StatusPending)

		err := f.uc.CancelBooking(context.Background(), id, uuid.New())
		require.ErrorIs(t, err, commands.ErrNotBookingTenant)
		assert.Equal(t, booking.StatusPending, f.store.Booking(id).Status)
	})

	t.Run("non-pending bookings are not cancellable", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusApproved, booking.StatusRejected, booking.StatusCancelled} {
			t.Run(status.String(), func(t *testing.T) {
				f := newBookingFixture(t)
				id := f.seedBooking(f.tenantID, day(7), day(12), status)

				err := f.uc.CancelBooking(context.Background(), id, f.tenantID)
				require.ErrorIs(t, err, booking.ErrNotCancellable)
				assert.Equal(t, status, f.store.Booking(id).Status)
			})
		}
	})

	t.Run("stay already started", func(t *testing.T) {
		f := newBookingFixture(t)
		id := f.seedBooking(f.tenantID, day(2), day(6), booking.StatusPending)

		f.clk.Set(day(2).Add(9 * time.Hour))
		err := f.uc.CancelBooking(context.Background(), id, f.tenantID)
		require.ErrorIs(t, err, booking.ErrNotCancellable)
		assert.Equal(t, booking.StatusPending, f.store.Booking(id).Status)
	})

	t.Run("cancellation on the day before checkin", func(t *testing.T) {
		f := newBookingFixture(t)
		id := f.seedBooking(f.tenantID, day(2), day(6), booking.StatusPending)

		f.clk.Set(day(1).Add(23 * time.Hour))
		err := f.uc.CancelBooking(context.Background(), id, f.tenantID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, f.store.Booking(id).Status)
	})
}
