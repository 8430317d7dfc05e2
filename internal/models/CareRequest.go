package models

import "gorm.io/gorm"

// CareRequest is an open call for care posted by a care-seeker, browsable by
// caregivers looking for work.
type CareRequest struct {
	gorm.Model
	CareSeekerID uint              `json:"care_seeker_id" gorm:"index"`
	CareSeeker   CareSeekerProfile `gorm:"foreignKey:CareSeekerID" json:"care_seeker,omitempty"`

	CareType    string  `json:"care_type"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	StartDate   string  `json:"start_date"` // "2006-01-02"
	EndDate     string  `json:"end_date,omitempty"`
	HourlyRate  float64 `json:"hourly_rate,omitempty"`
	Urgency     string  `json:"urgency" gorm:"default:medium"` // "low", "medium", "high"
	Status      string  `json:"status" gorm:"default:open"`    // "open", "in_progress", "completed", "cancelled"
}
