package repository

import (
	"circlenet_backend/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(msg *model.Message) error {
	return r.DB.Create(msg).Error
}

func (r *MessageRepository) Outgoing(connectionID string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.DB.Where("connection_id = ?", connectionID).
		Order("created_at DESC").
		Find(&msgs).Error
	return msgs, err
}

// Conversation merges a connection's outgoing messages with its mirror's
// (the incoming side), newest first.
func (r *MessageRepository) Conversation(connectionID, oppositeID string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.DB.Where("connection_id IN ?", []string{connectionID, oppositeID}).
		Order("created_at DESC").
		Find(&msgs).Error
	return msgs, err
}

func (r *MessageRepository) UnreadCount(oppositeID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Message{}).
		Where("connection_id = ? AND is_read = ?", oppositeID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks the incoming side (the mirror's outgoing messages) read.
func (r *MessageRepository) MarkRead(oppositeID string) error {
	return r.DB.Model(&model.Message{}).
		Where("connection_id = ? AND is_read = ?", oppositeID, false).
		Update("is_read", true).Error
}

func (r *MessageRepository) Latest(connectionID, oppositeID string) (*model.Message, error) {
	var msg model.Message
	err := r.DB.Where("connection_id IN ?", []string{connectionID, oppositeID}).
		Order("created_at DESC").
		First(&msg).Error
	return &msg, err
}
