package repository

import (
	"context"
	"driveschool_backend/internal/model"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type MessageRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewMessageRepository(db *gorm.DB, rdb *redis.Client) *MessageRepository {
	return &MessageRepository{DB: db, Redis: rdb}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("msg:unread:%d", userID)
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.DB.Create(message).Error; err != nil {
		return err
	}
	if r.Redis != nil {
		// Best effort: the counter is rebuilt from the DB on miss.
		r.Redis.Incr(ctx, unreadKey(message.RecipientID))
	}
	return nil
}

// ListConversation pages messages between two users, newest first.
func (r *MessageRepository) ListConversation(userA, userB uint, page, limit int) ([]model.Message, int64, error) {
	query := r.DB.Model(&model.Message{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.Message
	offset := (page - 1) * limit
	err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&messages).Error
	return messages, total, err
}

// MarkConversationRead stamps every unread message from sender to
// recipient and drops the cached counter so it is recounted.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, recipientID, senderID uint) error {
	now := time.Now()
	err := r.DB.Model(&model.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", recipientID, senderID).
		Update("read_at", now).Error
	if err != nil {
		return err
	}
	if r.Redis != nil {
		r.Redis.Del(ctx, unreadKey(recipientID))
	}
	return nil
}

// CountUnread serves from Redis when warm, otherwise recounts from the
// DB and primes the cache.
func (r *MessageRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	if r.Redis != nil {
		if cached, err := r.Redis.Get(ctx, unreadKey(userID)).Int64(); err == nil {
			return cached, nil
		}
	}

	var count int64
	err := r.DB.Model(&model.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if r.Redis != nil {
		r.Redis.Set(ctx, unreadKey(userID), count, time.Hour)
	}
	return count, nil
}

// Partners returns the distinct user ids this user has exchanged
// messages with, most recent conversation first.
func (r *MessageRepository) Partners(userID uint) ([]uint, error) {
	var partners []uint
	err := r.DB.Model(&model.Message{}).
		Select("CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS partner", userID).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Group("partner").
		Order("MAX(id) DESC").
		Pluck("partner", &partners).Error
	return partners, err
}

// LatestBetween returns the most recent message between two users.
func (r *MessageRepository) LatestBetween(userA, userB uint) (*model.Message, error) {
	var message model.Message
	err := r.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("id DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// CountUnreadFrom counts unread messages from one specific sender.
func (r *MessageRepository) CountUnreadFrom(recipientID, senderID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", recipientID, senderID).
		Count(&count).Error
	return count, err
}
