package repository

import (
	"circlenet_backend/internal/model"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	DB *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{DB: db}
}

// FindByID loads an invitation with its circle set. Acceptance is open to
// any holder of the ID, so there is no owner-scoped variant for reading.
func (r *InvitationRepository) FindByID(id string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.DB.Preload("Circles").Preload("Owner").
		First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *InvitationRepository) FindByIDForOwner(id, ownerID string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.DB.Preload("Circles").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&inv).Error
	return &inv, err
}

func (r *InvitationRepository) ListByOwner(ownerID string) ([]model.Invitation, error) {
	var invs []model.Invitation
	err := r.DB.Preload("Circles").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}

func (r *InvitationRepository) Delete(tx *gorm.DB, inv *model.Invitation) error {
	// The many2many join rows do not cascade from the invitation side on
	// every backend, so clear them explicitly before the row goes.
	if err := tx.Model(inv).Association("Circles").Clear(); err != nil {
		return err
	}
	return tx.Delete(inv).Error
}
