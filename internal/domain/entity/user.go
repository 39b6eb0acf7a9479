// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the self-reported gender of a user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// SubscriptionTier is the paid tier of a user account.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
	TierElite   SubscriptionTier = "elite"
)

// Valid reports whether the tier is one of the known values.
func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierFree, TierPremium, TierElite:
		return true
	}

	return false
}

// User is the core identity in the system. Accounts are created from a phone
// number alone; the rest of the profile is filled in by the profile-setup flow.
type User struct {
	ID              uuid.UUID        `json:"id"`
	Phone           string           `json:"phone"`            // Unique phone number in E.164 form, the login identifier.
	Name            string           `json:"name"`             // Display name, empty until the profile is completed.
	Age             int              `json:"age"`
	Gender          Gender           `json:"gender"`
	Interests       []string         `json:"interests"`        // Free-form interest tags used for match overlap.
	AvatarURL       string           `json:"avatar_url"`
	Tier            SubscriptionTier `json:"tier"`
	TierExpiresAt   *time.Time       `json:"tier_expires_at,omitempty"`
	ProfileComplete bool             `json:"profile_complete"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
