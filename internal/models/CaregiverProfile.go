package models

import (
	"time"

	"gorm.io/gorm"
)

// Verification statuses an admin can assign to a caregiver profile.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// CaregiverProfile holds the public listing attributes of a caregiver.
// Rating and ReviewCount are derived values: they always equal the aggregate
// of reviews addressed to this profile's user and are only written inside the
// review-creation transaction.
type CaregiverProfile struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	HourlyRate      float64 `json:"hourly_rate"`
	Bio             string  `json:"bio"`
	Experience      string  `json:"experience"`
	Specialties     string  `json:"specialties"`      // JSON-encoded array of strings
	ServicesOffered string  `json:"services_offered"` // JSON-encoded array of strings
	Availability    string  `json:"availability"`     // JSON-encoded weekly schedule

	Location         string  `json:"location"`
	PlaceID          string  `json:"place_id,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`

	// Geo holds the profile coordinates as a WKB-encoded point so nearby
	// search can decode once and filter in memory.
	Geo []byte `gorm:"type:bytea" json:"-"`

	VerificationStatus string     `json:"verification_status" gorm:"default:pending"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
	AdminNotes         string     `json:"-"`
	Active             bool       `json:"active" gorm:"default:true"`

	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}
