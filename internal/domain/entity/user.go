// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // Login identifier.
	Name      string    // Display name.
	Role      Role      // customer or merchant.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Gender is the optional self-reported gender of a profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid reports whether g is empty or one of the known genders.
func (g Gender) IsValid() bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// ActivityLevel is the optional self-reported activity level of a profile.
type ActivityLevel string

const (
	ActivityLevelSedentary ActivityLevel = "sedentary"
	ActivityLevelLight     ActivityLevel = "light"
	ActivityLevelActive    ActivityLevel = "active"
	ActivityLevelAthlete   ActivityLevel = "athlete"
)

// IsValid reports whether a is empty or one of the known activity levels.
func (a ActivityLevel) IsValid() bool {
	switch a {
	case "", ActivityLevelSedentary, ActivityLevelLight, ActivityLevelActive, ActivityLevelAthlete:
		return true
	default:
		return false
	}
}

// UserProfile holds the optional biometric data and free-text memo of an account.
// Every preference entry hangs off a profile; a user without a profile accumulates no scores.
type UserProfile struct {
	UserID        uuid.UUID
	HeightCm      *float64
	WeightKg      *float64
	Age           *int
	Gender        Gender
	ActivityLevel ActivityLevel
	Memo          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
