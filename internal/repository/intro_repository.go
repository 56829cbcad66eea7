package repository

import (
	"circlenet_backend/internal/model"

	"gorm.io/gorm"
)

type IntroRepository struct {
	DB *gorm.DB
}

func NewIntroRepository(db *gorm.DB) *IntroRepository {
	return &IntroRepository{DB: db}
}

func (r *IntroRepository) FindByID(id string) (*model.Intro, error) {
	var intro model.Intro
	err := r.DB.Preload("Sender").Preload("Introduced").
		First(&intro, "id = ?", id).Error
	return &intro, err
}

// FindByIDForReceiver hides intros not directed at the account.
func (r *IntroRepository) FindByIDForReceiver(id, receiverID string) (*model.Intro, error) {
	var intro model.Intro
	err := r.DB.Preload("Sender").Preload("Introduced").
		Where("id = ? AND receiver_id = ?", id, receiverID).
		First(&intro).Error
	return &intro, err
}

// ListOpenForReceiver lists intros directed at the account whose introduced
// party the account is not yet connected with. Only receiver_id is queried;
// the mirrored rows belong to the other party.
func (r *IntroRepository) ListOpenForReceiver(receiverID string, connectedIDs []string) ([]model.Intro, error) {
	var intros []model.Intro
	q := r.DB.Preload("Sender").Preload("Introduced").
		Where("receiver_id = ? AND is_accepted = ?", receiverID, false)
	if len(connectedIDs) > 0 {
		q = q.Where("introduced_id NOT IN ?", connectedIDs)
	}
	err := q.Order("created_at DESC").Find(&intros).Error
	return intros, err
}
