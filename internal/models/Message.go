package models

import "gorm.io/gorm"

type Message struct {
	gorm.Model
	ConversationID uint `json:"conversation_id" gorm:"index"`
	SenderID       uint `json:"sender_id"`
	ReceiverID     uint `json:"receiver_id" gorm:"index"`
	Sender         User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	Content string `json:"content"`
	Read    bool   `json:"read" gorm:"default:false"`
}
