package repository

import (
	"circlenet_backend/internal/model"

	"gorm.io/gorm"
)

type CircleRepository struct {
	DB *gorm.DB
}

func NewCircleRepository(db *gorm.DB) *CircleRepository {
	return &CircleRepository{DB: db}
}

func (r *CircleRepository) Create(circle *model.Circle) error {
	return r.DB.Create(circle).Error
}

func (r *CircleRepository) FindByIDForOwner(id, ownerID string) (*model.Circle, error) {
	var circle model.Circle
	err := r.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&circle).Error
	return &circle, err
}

func (r *CircleRepository) ListByOwner(ownerID string) ([]model.Circle, error) {
	var circles []model.Circle
	err := r.DB.Where("owner_id = ?", ownerID).Order("name").Find(&circles).Error
	return circles, err
}

func (r *CircleRepository) NameExists(ownerID, name string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Circle{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error
	return count > 0, err
}

// CountOwnedIn counts how many of the given circle IDs belong to ownerID;
// callers compare against len(ids) to reject foreign circles in one query.
func (r *CircleRepository) CountOwnedIn(tx *gorm.DB, ownerID string, ids []string) (int64, error) {
	var count int64
	err := tx.Model(&model.Circle{}).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Count(&count).Error
	return count, err
}

func (r *CircleRepository) Save(circle *model.Circle) error {
	return r.DB.Save(circle).Error
}

func (r *CircleRepository) Delete(circle *model.Circle) error {
	return r.DB.Delete(circle).Error
}

// Members resolves the other-party accounts across all of the circle's
// memberships.
func (r *CircleRepository) Members(circleID string) ([]model.User, error) {
	var users []model.User
	err := r.DB.
		Joins("JOIN connections ON connections.other_user_id = users.id").
		Joins("JOIN circle_memberships ON circle_memberships.connection_id = connections.id").
		Where("circle_memberships.circle_id = ?", circleID).
		Find(&users).Error
	return users, err
}

func (r *CircleRepository) CreateMembership(tx *gorm.DB, m *model.CircleMembership) error {
	return tx.Create(m).Error
}

func (r *CircleRepository) MembershipsByConnection(connectionID string) ([]model.CircleMembership, error) {
	var memberships []model.CircleMembership
	err := r.DB.Preload("Circle").
		Where("connection_id = ?", connectionID).
		Find(&memberships).Error
	return memberships, err
}

func (r *CircleRepository) DeleteMembership(circleID, connectionID string) error {
	return r.DB.
		Where("circle_id = ? AND connection_id = ?", circleID, connectionID).
		Delete(&model.CircleMembership{}).Error
}
