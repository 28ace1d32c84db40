package review

import (
	"time"

	"github.com/google/uuid"
)

// EligibilityInput carries what the review gate needs: eligibility
// requires an approved booking whose stay has completed and no existing
// review by the same tenant.
type EligibilityInput struct {
	TenantID  uuid.UUID
	ListingID uuid.UUID
	Now       time.Time
}
