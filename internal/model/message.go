package model

import "time"

// Message is a direct message between two users.
type Message struct {
	BaseModel
	SenderID    uint       `gorm:"index;not null" json:"senderId"`
	RecipientID uint       `gorm:"index;not null" json:"recipientId"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	ReadAt      *time.Time `json:"readAt"`
}

func (Message) TableName() string {
	return "messages"
}

// Conversation is a list-view row: the other party plus the latest message.
type Conversation struct {
	UserID      uint      `json:"userId"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	LastMessage string    `json:"lastMessage"`
	LastSentAt  time.Time `json:"lastSentAt"`
	Unread      int64     `json:"unread"`
}
