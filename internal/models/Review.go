package models

import "gorm.io/gorm"

// Review is a 1-5 star rating left by one user about another, optionally tied
// to a booking. A reviewer may leave at most one review per booking, enforced
// by the composite unique index.
type Review struct {
	gorm.Model
	ReviewerID     uint  `json:"reviewer_id" gorm:"uniqueIndex:idx_reviewer_booking"`
	ReviewedUserID uint  `json:"reviewed_user_id" gorm:"index"`
	BookingID      *uint `json:"booking_id,omitempty" gorm:"uniqueIndex:idx_reviewer_booking"`

	Reviewer     User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	ReviewedUser User `gorm:"foreignKey:ReviewedUserID" json:"-"`

	Rating  int    `json:"rating"` // 1-5 stars
	Comment string `json:"comment,omitempty"`
}
