package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Booking is a scheduled, priced engagement between one care-seeker and one
// caregiver. HourlyRate is snapshotted from the caregiver profile at creation
// time; TotalAmount = DurationHours * HourlyRate and is never recomputed when
// the caregiver later changes their rate.
type Booking struct {
	gorm.Model
	CareSeekerID uint `json:"care_seeker_id" gorm:"index"`
	CaregiverID  uint `json:"caregiver_id" gorm:"index"`
	CareSeeker   User `gorm:"foreignKey:CareSeekerID" json:"care_seeker,omitempty"`
	Caregiver    User `gorm:"foreignKey:CaregiverID" json:"caregiver,omitempty"`

	Date          string  `json:"date"`       // "2006-01-02"
	StartTime     string  `json:"start_time"` // "15:04"
	EndTime       string  `json:"end_time"`   // "15:04"
	DurationHours float64 `json:"duration_hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	TotalAmount   float64 `json:"total_amount"`

	Status        BookingStatus `json:"status" gorm:"default:pending"`
	PaymentStatus string        `json:"payment_status" gorm:"default:pending"`
	PaymentMethod string        `json:"payment_method,omitempty"`

	SpecialInstructions string `json:"special_instructions,omitempty"`
	EmergencyContact    string `json:"emergency_contact,omitempty"`
	EmergencyPhone      string `json:"emergency_phone,omitempty"`

	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	AdminNotes         string     `json:"-"`
}
