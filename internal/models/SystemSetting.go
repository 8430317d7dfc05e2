package models

import "gorm.io/gorm"

// SystemSetting is one row of the platform's key/value configuration store.
// Type documents how Value should be interpreted by consumers.
type SystemSetting struct {
	gorm.Model
	Key         string `json:"key" gorm:"unique"`
	Value       string `json:"value"`
	Type        string `json:"type" gorm:"default:string"` // "string", "number", "boolean", "json"
	Description string `json:"description,omitempty"`
}
