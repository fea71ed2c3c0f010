package repository

import (
	"errors"

	"blood-donation-api/internal/domain/entity"
	domainRepo "blood-donation-api/internal/domain/repository"

	"gorm.io/gorm"
)

type conversationRepository struct{}

func NewConversationRepository() domainRepo.ConversationRepository {
	return &conversationRepository{}
}

func (r *conversationRepository) Create(db *gorm.DB, conversation *entity.Conversation) error {
	return db.Create(conversation).Error
}

func (r *conversationRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC, messages.id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) CreateBatch(db *gorm.DB, messages []entity.Message) error {
	return db.Create(&messages).Error
}

func (r *messageRepository) FindByConversationID(db *gorm.DB, conversationID uint) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) DeleteByConversationID(db *gorm.DB, conversationID uint) error {
	return db.Where("conversation_id = ?", conversationID).Delete(&entity.Message{}).Error
}
