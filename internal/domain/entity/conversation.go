package entity

import (
	"time"

	"gorm.io/gorm"
)

type MessageSender string

const (
	MessageSenderUser  MessageSender = "USER"
	MessageSenderModel MessageSender = "MODEL"
)

// Conversation holds the chat history between a user and the assistant
type Conversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message is cleared by soft delete so history can be audited
type Message struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint           `gorm:"not null;index" json:"conversationId"`
	Sender         MessageSender  `gorm:"type:varchar(10);not null" json:"sender"`
	Message        string         `gorm:"type:text;not null" json:"message"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
