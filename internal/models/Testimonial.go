package models

import "gorm.io/gorm"

// Testimonial is landing-page content curated by admins.
type Testimonial struct {
	gorm.Model
	Name     string `json:"name"`
	UserRole string `json:"role"` // e.g. "Care Seeker", "Caregiver"
	Content  string `json:"content"`
	Rating   int    `json:"rating"`
	Approved bool   `json:"approved" gorm:"default:false"`
}
