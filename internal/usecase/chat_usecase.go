package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blood-donation-api/internal/converter"
	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
	"blood-donation-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrChatUnavailable      = errors.New("chat assistant is not configured")
	ErrConversationNotFound = errors.New("conversation not found")
)

// ChatModel produces the assistant's reply given the stored history
type ChatModel interface {
	Reply(ctx context.Context, systemInstruction string, history []entity.Message, message string) (string, error)
}

type ChatUsecase interface {
	SendMessage(ctx context.Context, userID uint, req *dto.ChatRequest) ([]dto.MessageResponse, error)
	GetHistory(ctx context.Context, userID uint) ([]dto.MessageResponse, error)
	ClearHistory(ctx context.Context, userID uint) error
}

type chatUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	model            ChatModel
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	now              func() time.Time
}

// NewChatUsecase accepts a nil model; every call then fails with ErrChatUnavailable.
func NewChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	model ChatModel,
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
) ChatUsecase {
	return &chatUsecase{
		db:               db,
		log:              log,
		model:            model,
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		now:              time.Now,
	}
}

func (u *chatUsecase) SendMessage(ctx context.Context, userID uint, req *dto.ChatRequest) ([]dto.MessageResponse, error) {
	if u.model == nil {
		return nil, ErrChatUnavailable
	}

	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	conversation, err := u.conversationRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find conversation of user %d: %+v", userID, err)
		return nil, err
	}

	var previous []entity.Message
	if conversation != nil {
		previous = conversation.Messages
	}

	reply, err := u.model.Reply(ctx, u.systemInstruction(user), previous, req.Message)
	if err != nil {
		u.log.Warnf("Failed to get chat reply: %+v", err)
		return nil, err
	}

	// A first conversation is only stored together with its first exchange
	tx := db.Begin()
	defer tx.Rollback()

	if conversation == nil {
		conversation = &entity.Conversation{UserID: userID}
		if err := u.conversationRepo.Create(tx, conversation); err != nil {
			u.log.Warnf("Failed to create conversation: %+v", err)
			return nil, err
		}
	}

	messages := []entity.Message{
		{ConversationID: conversation.ID, Sender: entity.MessageSenderUser, Message: req.Message},
		{ConversationID: conversation.ID, Sender: entity.MessageSenderModel, Message: strings.TrimRight(reply, " \t\r\n")},
	}
	if err := u.messageRepo.CreateBatch(tx, messages); err != nil {
		u.log.Warnf("Failed to save chat messages: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	history, err := u.messageRepo.FindByConversationID(db, conversation.ID)
	if err != nil {
		u.log.Warnf("Failed to load chat history: %+v", err)
		return nil, err
	}

	return converter.MessagesToResponses(history), nil
}

func (u *chatUsecase) GetHistory(ctx context.Context, userID uint) ([]dto.MessageResponse, error) {
	if u.model == nil {
		return nil, ErrChatUnavailable
	}

	conversation, err := u.conversationRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find conversation of user %d: %+v", userID, err)
		return nil, err
	}
	if conversation == nil {
		return []dto.MessageResponse{}, nil
	}

	return converter.MessagesToResponses(conversation.Messages), nil
}

func (u *chatUsecase) ClearHistory(ctx context.Context, userID uint) error {
	if u.model == nil {
		return ErrChatUnavailable
	}

	db := u.db.WithContext(ctx)

	conversation, err := u.conversationRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find conversation of user %d: %+v", userID, err)
		return err
	}
	if conversation == nil {
		return ErrConversationNotFound
	}

	if err := u.messageRepo.DeleteByConversationID(db, conversation.ID); err != nil {
		u.log.Warnf("Failed to clear conversation %d: %+v", conversation.ID, err)
		return err
	}

	return nil
}

func (u *chatUsecase) systemInstruction(user *entity.User) string {
	gender, bloodType, rhesus := "person", "", ""
	if user.Gender != nil {
		gender = strings.ToLower(string(*user.Gender))
	}
	if user.BloodType != nil {
		bloodType = string(*user.BloodType)
	}
	if user.Rhesus != nil {
		rhesus = string(*user.Rhesus)
	}

	return "You decide your female Indonesian name. You are a kind Indonesian red cross worker " +
		"aspiring to enlighten people about blood donation or Palang Merah Indonesia in general. " +
		"You are friendly, helpful, and informative. Your responses should be in semi casual Indonesian. " +
		"You should preferably end by offering user to ask more questions or health tips. " +
		fmt.Sprintf("User's name is %s, a %s born in %s (now is %s), weighs %gkg at %gcm. ",
			user.Name, gender, user.BirthDate.Format(dateLayout), u.now().Format(time.RFC3339), user.WeightKg, user.HeightCm) +
		fmt.Sprintf("Blood type is %s%s living in %s, %s, %s, %s, %s, Indonesia. ",
			bloodType, rhesus, user.Address, user.Village, user.District, user.City, user.Province) +
		"Avoid using markdown and bold using ** but you can do numeric list and bullet points via `-`. " +
		"Always redirect topic to health if user asks about other topics."
}
