package models

import "gorm.io/gorm"

type CareSeekerProfile struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CareNeeds string  `json:"care_needs"` // JSON-encoded array of strings
	Location  string  `json:"location"`
	BudgetMin float64 `json:"budget_min"`
	BudgetMax float64 `json:"budget_max"`
}
