package service

import (
	"context"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type MessageService struct {
	MessageRepo *repository.MessageRepository
	UserRepo    *repository.UserRepository
}

func NewMessageService(messageRepo *repository.MessageRepository, userRepo *repository.UserRepository) *MessageService {
	return &MessageService{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
	}
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipientId" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

func (s *MessageService) Send(ctx context.Context, senderID uint, req SendMessageRequest) (*model.Message, error) {
	if req.RecipientID == senderID {
		return nil, errors.New("cannot message yourself")
	}

	if _, err := s.UserRepo.FindByID(req.RecipientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrRecipientNotFound
		}
		return nil, err
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	}
	if err := s.MessageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversation pages the thread with another user and marks their
// messages read.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uint, page, limit int) ([]model.Message, int64, error) {
	messages, total, err := s.MessageRepo.ListConversation(userID, otherID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if err := s.MessageRepo.MarkConversationRead(ctx, userID, otherID); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.MessageRepo.CountUnread(ctx, userID)
}

// Conversations builds the inbox list: one row per partner with the
// latest message and that partner's unread count.
func (s *MessageService) Conversations(userID uint) ([]model.Conversation, error) {
	partners, err := s.MessageRepo.Partners(userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]model.Conversation, 0, len(partners))
	for _, partnerID := range partners {
		partner, err := s.UserRepo.FindByID(partnerID)
		if err != nil {
			continue
		}
		latest, err := s.MessageRepo.LatestBetween(userID, partnerID)
		if err != nil {
			continue
		}
		unread, err := s.MessageRepo.CountUnreadFrom(userID, partnerID)
		if err != nil {
			return nil, err
		}

		conversations = append(conversations, model.Conversation{
			UserID:      partnerID,
			Name:        partner.Name,
			Avatar:      partner.Avatar,
			LastMessage: latest.Body,
			LastSentAt:  latest.CreatedAt,
			Unread:      unread,
		})
	}
	return conversations, nil
}
