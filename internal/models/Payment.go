package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment records a simulated gateway charge for a booking. Created in the
// same transaction that flips the booking to confirmed.
type Payment struct {
	gorm.Model
	BookingID     uint      `json:"booking_id" gorm:"index"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id" gorm:"unique"`
	Status        string    `json:"status"`
	ProcessedAt   time.Time `json:"processed_at"`
}
