package service

import (
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/repository"
	"circlenet_backend/internal/util"

	"gorm.io/gorm"
)

// Circles every fresh account starts with. Colors follow the classic
// green-for-family, blue-for-friends defaults.
var defaultCircles = []struct {
	Name  string
	Color string
}{
	{Name: "Family", Color: "#008800"},
	{Name: "Friends", Color: "#000088"},
}

type CircleService struct {
	CircleRepo *repository.CircleRepository
	ConnRepo   *repository.ConnectionRepository
}

func NewCircleService(circleRepo *repository.CircleRepository, connRepo *repository.ConnectionRepository) *CircleService {
	return &CircleService{CircleRepo: circleRepo, ConnRepo: connRepo}
}

func (s *CircleService) List(ownerID string) ([]model.Circle, error) {
	return s.CircleRepo.ListByOwner(ownerID)
}

func (s *CircleService) Get(ownerID, circleID string) (*model.Circle, error) {
	circle, err := s.CircleRepo.FindByIDForOwner(circleID, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return circle, nil
}

func (s *CircleService) Create(ownerID, name, color string) (*model.Circle, error) {
	if err := util.ValidateColor(color); err != nil {
		return nil, err
	}

	exists, err := s.CircleRepo.NameExists(ownerID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateCircle
	}

	circle := &model.Circle{OwnerID: ownerID, Name: name, Color: color}
	if err := s.CircleRepo.Create(circle); err != nil {
		return nil, err
	}
	return circle, nil
}

func (s *CircleService) Update(ownerID, circleID, name, color string) (*model.Circle, error) {
	circle, err := s.CircleRepo.FindByIDForOwner(circleID, ownerID)
	if err != nil {
		return nil, notFound(err)
	}

	if err := util.ValidateColor(color); err != nil {
		return nil, err
	}

	if name != circle.Name {
		exists, err := s.CircleRepo.NameExists(ownerID, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.ErrDuplicateCircle
		}
	}

	circle.Name = name
	circle.Color = color
	if err := s.CircleRepo.Save(circle); err != nil {
		return nil, err
	}
	return circle, nil
}

// Delete hard-deletes the circle. Memberships and any post fan-out rows
// hanging off them disappear via the cascades; posts themselves survive.
func (s *CircleService) Delete(ownerID, circleID string) error {
	circle, err := s.CircleRepo.FindByIDForOwner(circleID, ownerID)
	if err != nil {
		return notFound(err)
	}
	return s.CircleRepo.Delete(circle)
}

// Members lists the accounts whose connection sits in the circle.
func (s *CircleService) Members(ownerID, circleID string) ([]model.User, error) {
	circle, err := s.CircleRepo.FindByIDForOwner(circleID, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return s.CircleRepo.Members(circle.ID)
}

// AddMember puts an existing connection into one of the owner's circles.
// Re-adding is a no-op.
func (s *CircleService) AddMember(ownerID, circleID, connectionID string) error {
	circle, err := s.CircleRepo.FindByIDForOwner(circleID, ownerID)
	if err != nil {
		return notFound(err)
	}
	conn, err := s.ConnRepo.FindByIDForOwner(connectionID, ownerID)
	if err != nil {
		return notFound(err)
	}

	return s.CircleRepo.DB.Transaction(func(tx *gorm.DB) error {
		return addMembershipTx(tx, circle.ID, conn.ID)
	})
}

func (s *CircleService) RemoveMember(ownerID, circleID, connectionID string) error {
	circle, err := s.CircleRepo.FindByIDForOwner(circleID, ownerID)
	if err != nil {
		return notFound(err)
	}
	conn, err := s.ConnRepo.FindByIDForOwner(connectionID, ownerID)
	if err != nil {
		return notFound(err)
	}
	return s.CircleRepo.DeleteMembership(circle.ID, conn.ID)
}

// addMembershipTx inserts the membership if it is not already present.
// Later posts into the circle fan out to it; rows fanned out earlier are
// untouched, visibility is frozen at publish time.
func addMembershipTx(tx *gorm.DB, circleID, connectionID string) error {
	var count int64
	if err := tx.Model(&model.CircleMembership{}).
		Where("circle_id = ? AND connection_id = ?", circleID, connectionID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&model.CircleMembership{CircleID: circleID, ConnectionID: connectionID}).Error
}

// seedDefaultCircles creates the starter circles for a new account inside
// the registration transaction.
func seedDefaultCircles(tx *gorm.DB, ownerID string) error {
	for _, dc := range defaultCircles {
		circle := &model.Circle{OwnerID: ownerID, Name: dc.Name, Color: dc.Color}
		if err := tx.Create(circle).Error; err != nil {
			return err
		}
	}
	return nil
}
