//go:build unit || e2e

package builder

import (
	"time"

	reqdto "rental-listings/internal/handler/dto/request"
	"rental-listings/internal/usecase/queries"
	"rental-listings/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	ListingTitle string
	TenantID     uuid.UUID
	TenantEmail  string
	StartDate    time.Time
	EndDate      time.Time
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	start := now.AddDate(0, 0, 7).Truncate(24 * time.Hour)
	return &BookingBuilder{
		ID:           uuid.New(),
		ListingID:    uuid.New(),
		ListingTitle: "Sunny two-room flat",
		TenantID:     uuid.New(),
		TenantEmail:  "tenant@example.com",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 5),
		Status:       "pending",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *BookingBuilder) WithListingID(id uuid.UUID) *BookingBuilder {
	b.ListingID = id
	return b
}

func (b *BookingBuilder) WithTenantID(id uuid.UUID) *BookingBuilder {
	b.TenantID = id
	return b
}

func (b *BookingBuilder) WithDates(start, end time.Time) *BookingBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) Approved() *BookingBuilder {
	b.Status = "approved"
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		StartDate: b.StartDate.Format("2006-01-02"),
		EndDate:   b.EndDate.Format("2006-01-02"),
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	return &queries.BookingView{
		ID:           b.ID,
		ListingID:    b.ListingID,
		ListingTitle: b.ListingTitle,
		TenantID:     b.TenantID,
		TenantEmail:  b.TenantEmail,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:           b.ID,
		ListingID:    b.ListingID,
		ListingTitle: b.ListingTitle,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        b.ID,
		ListingID: b.ListingID,
		TenantID:  b.TenantID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status:    b.Status,
	}
}
