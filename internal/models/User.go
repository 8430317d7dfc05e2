package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string     `json:"name"`
	Email        string     `json:"email" gorm:"unique"`
	Password     string     `json:"-"`
	Phone        string     `json:"phone"`
	UserType     string     `json:"user_type"`                // "care_seeker", "caregiver", "admin"
	Role         string     `json:"role" gorm:"default:user"` // "user", "admin"
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	ProfileImage string     `json:"profile_image,omitempty"`
	Notes        string     `json:"-"` // admin-only notes, never sent to the user

	// Actor-specific relations
	CaregiverProfile  *CaregiverProfile  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"caregiver_profile,omitempty"`
	CareSeekerProfile *CareSeekerProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"care_seeker_profile,omitempty"`
}
