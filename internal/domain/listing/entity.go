package listing

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrEmptyLocation      = errors.New("location cannot be empty")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrInvalidRooms       = errors.New("rooms must be at least 1")
	ErrInvalidHousingType = errors.New("invalid housing type")
)

const MaxTitleLength = 255

// Listing is a rentable property published by a landlord. Inactive
// listings are hidden from search but keep their booking history.
type Listing struct {
	id          uuid.UUID
	landlordID  uuid.UUID
	title       string
	description string
	location    string
	priceCents  int64
	rooms       int
	housingType HousingType
	contactInfo string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func validateAttributes(title, location string, priceCents int64, rooms int, housingType HousingType) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if location == "" {
		return ErrEmptyLocation
	}
	if priceCents < 0 {
		return ErrNegativePrice
	}
	if rooms < 1 {
		return ErrInvalidRooms
	}
	if !housingType.IsValid() {
		return ErrInvalidHousingType
	}
	return nil
}

func NewListing(landlordID uuid.UUID, title, description, location string, priceCents int64, rooms int, housingType HousingType, contactInfo string) (*Listing, error) {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	if err := validateAttributes(title, location, priceCents, rooms, housingType); err != nil {
		return nil, err
	}

	return &Listing{
		id:          uuid.New(),
		landlordID:  landlordID,
		title:       title,
		description: description,
		location:    location,
		priceCents:  priceCents,
		rooms:       rooms,
		housingType: housingType,
		contactInfo: strings.TrimSpace(contactInfo),
		isActive:    true,
	}, nil
}

func ReconstructListing(id, landlordID uuid.UUID, title, description, location string, priceCents int64, rooms int, housingType HousingType, contactInfo string, isActive bool, createdAt, updatedAt time.Time) *Listing {
	return &Listing{
		id:          id,
		landlordID:  landlordID,
		title:       title,
		description: description,
		location:    location,
		priceCents:  priceCents,
		rooms:       rooms,
		housingType: housingType,
		contactInfo: contactInfo,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (l *Listing) ID() uuid.UUID            { return l.id }
func (l *Listing) LandlordID() uuid.UUID    { return l.landlordID }
func (l *Listing) Title() string            { return l.title }
func (l *Listing) Description() string      { return l.description }
func (l *Listing) Location() string         { return l.location }
func (l *Listing) PriceCents() int64        { return l.priceCents }
func (l *Listing) Rooms() int               { return l.rooms }
func (l *Listing) HousingType() HousingType { return l.housingType }
func (l *Listing) ContactInfo() string      { return l.contactInfo }
func (l *Listing) IsActive() bool           { return l.isActive }
func (l *Listing) CreatedAt() time.Time     { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time     { return l.updatedAt }

func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.landlordID == userID
}

func (l *Listing) ToggleActive() {
	l.isActive = !l.isActive
}

// Update replaces the listing's attributes, applying the same
// validation as NewListing.
func (l *Listing) Update(title, description, location string, priceCents int64, rooms int, housingType HousingType, contactInfo string) error {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	if err := validateAttributes(title, location, priceCents, rooms, housingType); err != nil {
		return err
	}

	l.title = title
	l.description = description
	l.location = location
	l.priceCents = priceCents
	l.rooms = rooms
	l.housingType = housingType
	l.contactInfo = strings.TrimSpace(contactInfo)
	return nil
}
