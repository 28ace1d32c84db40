//go:build unit

// Package fake provides an in-memory UnitOfWork for command tests. It
// mirrors the database semantics the commands rely on: per-listing
// serialization, the approved-overlap exclusion rule and the one
// review per tenant and listing constraint.
package fake

import (
	"context"
	"sync"
	"time"

	"rental-listings/internal/domain/booking"
	"rental-listings/internal/domain/listing"
	"rental-listings/internal/domain/review"
	"rental-listings/internal/domain/user"
	"rental-listings/internal/infra"
	"rental-listings/internal/infra/db"
	"rental-listings/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingRecord struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	TenantID  uuid.UUID
	Period    booking.StayPeriod
	Status    booking.Status
	CreatedAt time.Time
}

type Store struct {
	mu        sync.Mutex
	listingMu sync.Map // uuid.UUID -> *sync.Mutex

	listings map[uuid.UUID]*listing.Listing
	bookings map[uuid.UUID]*BookingRecord
	reviews  map[uuid.UUID]*shared.ReviewSnapshot
	users    map[uuid.UUID]*user.User
}

func NewStore() *Store {
	return &Store{
		listings: make(map[uuid.UUID]*listing.Listing),
		bookings: make(map[uuid.UUID]*BookingRecord),
		reviews:  make(map[uuid.UUID]*shared.ReviewSnapshot),
		users:    make(map[uuid.UUID]*user.User),
	}
}

func (s *Store) AddListing(l *listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ID()] = l
}

func (s *Store) AddBooking(rec *BookingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[rec.ID] = rec
}

func (s *Store) AddReview(snap *shared.ReviewSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[snap.ID] = snap
}

func (s *Store) Booking(id uuid.UUID) *BookingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.bookings[id]; ok {
		cp := *rec
		return &cp
	}
	return nil
}

func (s *Store) BookingCountByStatus(listingID uuid.UUID, status booking.Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.bookings {
		if rec.ListingID == listingID && rec.Status == status {
			n++
		}
	}
	return n
}

func (s *Store) Review(id uuid.UUID) *shared.ReviewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.reviews[id]; ok {
		cp := *snap
		return &cp
	}
	return nil
}

func (s *Store) lockListing(id uuid.UUID) *sync.Mutex {
	mu, _ := s.listingMu.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// UnitOfWork implements shared.UnitOfWork over the in-memory store.
// There is no rollback: commands only mutate after their checks pass,
// which is the property under test.
type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *UnitOfWork) WithinListing(ctx context.Context, listingID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	mu := u.store.lockListing(listingID)
	mu.Lock()
	defer mu.Unlock()
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *UnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *Store
}

func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{store: t.store} }
func (t *fakeTx) Listings() shared.ListingRepository { return &fakeListingRepo{store: t.store} }
func (t *fakeTx) Reviews() shared.ReviewRepository   { return &fakeReviewRepo{store: t.store} }
func (t *fakeTx) Users() shared.UserRepository       { return &fakeUserRepo{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads         { return &fakeReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeReads struct {
	store *Store
}

func (r *fakeReads) ListingByID(_ context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, ok := r.store.listings[id]
	if !ok {
		return nil, infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return &shared.ListingSnapshot{
		ID:         l.ID(),
		LandlordID: l.LandlordID(),
		Title:      l.Title(),
		IsActive:   l.IsActive(),
	}, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &shared.BookingSnapshot{
		ID:        rec.ID,
		ListingID: rec.ListingID,
		TenantID:  rec.TenantID,
		StartDate: rec.Period.Start(),
		EndDate:   rec.Period.End(),
		Status:    rec.Status.String(),
	}, nil
}

func (r *fakeReads) BlockingPeriods(_ context.Context, listingID uuid.UUID) ([]booking.StayPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var periods []booking.StayPeriod
	for _, rec := range r.store.bookings {
		if rec.ListingID != listingID {
			continue
		}
		if rec.Status == booking.StatusPending || rec.Status == booking.StatusApproved {
			periods = append(periods, rec.Period)
		}
	}
	return periods, nil
}

func (r *fakeReads) ApprovedPeriods(_ context.Context, listingID, excludeBookingID uuid.UUID) ([]booking.StayPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var periods []booking.StayPeriod
	for _, rec := range r.store.bookings {
		if rec.ListingID != listingID || rec.ID == excludeBookingID {
			continue
		}
		if rec.Status == booking.StatusApproved {
			periods = append(periods, rec.Period)
		}
	}
	return periods, nil
}

func (r *fakeReads) HasCompletedApprovedStay(_ context.Context, tenantID, listingID uuid.UUID, now time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rec := range r.store.bookings {
		if rec.ListingID == listingID && rec.TenantID == tenantID &&
			rec.Status == booking.StatusApproved && rec.Period.CompletedBy(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReads) HasReview(_ context.Context, tenantID, listingID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, snap := range r.store.reviews {
		if snap.TenantID == tenantID && snap.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReads) ReviewByID(_ context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.reviews[id]
	if !ok {
		return nil, infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

type fakeBookingRepo struct {
	store *Store
}

func (f *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.listings[b.ListingID()]; !ok {
		return uuid.Nil, infra.WrapRepoErr("unknown listing", nil, infra.KindForeignKeyViolated)
	}
	if b.Status() == booking.StatusApproved && f.overlapsApprovedLocked(b.ListingID(), b.ID(), b.Period()) {
		return uuid.Nil, infra.WrapRepoErr("approved stay overlap", nil, infra.KindConflict)
	}
	f.store.bookings[b.ID()] = &BookingRecord{
		ID:        b.ID(),
		ListingID: b.ListingID(),
		TenantID:  b.TenantID(),
		Period:    b.Period(),
		Status:    b.Status(),
		CreatedAt: time.Now(),
	}
	return b.ID(), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status booking.Status) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	rec, ok := f.store.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if status == booking.StatusApproved && f.overlapsApprovedLocked(rec.ListingID, id, rec.Period) {
		return infra.WrapRepoErr("approved stay overlap", nil, infra.KindConflict)
	}
	rec.Status = status
	return nil
}

func (f *fakeBookingRepo) overlapsApprovedLocked(listingID, selfID uuid.UUID, period booking.StayPeriod) bool {
	for _, rec := range f.store.bookings {
		if rec.ListingID != listingID || rec.ID == selfID || rec.Status != booking.StatusApproved {
			continue
		}
		if period.Overlaps(rec.Period) {
			return true
		}
	}
	return false
}

type fakeListingRepo struct {
	store *Store
}

func (f *fakeListingRepo) Create(_ context.Context, _ db.DBTX, l *listing.Listing) (uuid.UUID, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.listings[l.ID()] = l
	return l.ID(), nil
}

func (f *fakeListingRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*listing.Listing, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	l, ok := f.store.listings[id]
	if !ok {
		return nil, infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	return l, nil
}

func (f *fakeListingRepo) Update(_ context.Context, _ db.DBTX, l *listing.Listing) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.listings[l.ID()]; !ok {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	f.store.listings[l.ID()] = l
	return nil
}

func (f *fakeListingRepo) SetActive(_ context.Context, _ db.DBTX, id uuid.UUID, active bool) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	l, ok := f.store.listings[id]
	if !ok {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	if l.IsActive() != active {
		l.ToggleActive()
	}
	return nil
}

func (f *fakeListingRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.listings[id]; !ok {
		return infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)
	}
	for _, rec := range f.store.bookings {
		if rec.ListingID == id {
			return infra.WrapRepoErr("listing has bookings", nil, infra.KindForeignKeyViolated)
		}
	}
	delete(f.store.listings, id)
	return nil
}

type fakeReviewRepo struct {
	store *Store
}

func (f *fakeReviewRepo) Create(_ context.Context, _ db.DBTX, rev *review.Review) (uuid.UUID, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, snap := range f.store.reviews {
		if snap.TenantID == rev.TenantID() && snap.ListingID == rev.ListingID() {
			return uuid.Nil, infra.WrapRepoErr("review already exists", nil, infra.KindDuplicateKey)
		}
	}
	f.store.reviews[rev.ID()] = &shared.ReviewSnapshot{
		ID:        rev.ID(),
		TenantID:  rev.TenantID(),
		ListingID: rev.ListingID(),
		Rating:    rev.Rating().Value(),
		Comment:   rev.Comment().String(),
	}
	return rev.ID(), nil
}

func (f *fakeReviewRepo) Update(_ context.Context, _ db.DBTX, rev *review.Review) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	snap, ok := f.store.reviews[rev.ID()]
	if !ok {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	snap.Rating = rev.Rating().Value()
	snap.Comment = rev.Comment().String()
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, _ db.DBTX, reviewID uuid.UUID) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.reviews[reviewID]; !ok {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	delete(f.store.reviews, reviewID)
	return nil
}

type fakeUserRepo struct {
	store *Store
}

func (f *fakeUserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, existing := range f.store.users {
		if existing.Email().Value() == u.Email().Value() {
			return uuid.Nil, infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
		}
	}
	f.store.users[u.ID()] = u
	return u.ID(), nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return nil
}
