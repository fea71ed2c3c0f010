package repository

import (
	"blood-donation-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(db *gorm.DB, conversation *entity.Conversation) error
	FindByUserID(db *gorm.DB, userID uint) (*entity.Conversation, error)
}

type MessageRepository interface {
	CreateBatch(db *gorm.DB, messages []entity.Message) error
	FindByConversationID(db *gorm.DB, conversationID uint) ([]entity.Message, error)
	DeleteByConversationID(db *gorm.DB, conversationID uint) error
}
