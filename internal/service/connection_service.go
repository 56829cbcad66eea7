package service

import (
	"circlenet_backend/internal/config"
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/repository"
	"circlenet_backend/internal/util"
	"circlenet_backend/pkg/monitoring"
	"errors"

	"gorm.io/gorm"
)

// ConnectionService owns the mirrored relationship edges. A connection is
// never observably half-created: the row, its mirror, and the links between
// them happen inside one transaction, after the admission check and before
// anything else can read them.
type ConnectionService struct {
	ConnRepo   *repository.ConnectionRepository
	CircleRepo *repository.CircleRepository
	Cfg        *config.Config
}

func NewConnectionService(connRepo *repository.ConnectionRepository, circleRepo *repository.CircleRepository, cfg *config.Config) *ConnectionService {
	return &ConnectionService{
		ConnRepo:   connRepo,
		CircleRepo: circleRepo,
		Cfg:        cfg,
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return err
}

// Connect creates the mirrored pair between two accounts.
func (s *ConnectionService) Connect(ownerID, otherID string) (*model.Connection, error) {
	var conn *model.Connection
	err := s.ConnRepo.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		conn, err = s.connectTx(tx, ownerID, otherID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.ConnRepo.InvalidateCache(ownerID, otherID)
	monitoring.PairCreations.Inc()
	return conn, nil
}

// connectTx runs the pair creation inside the caller's transaction so
// invitation and intro acceptance stay all-or-nothing. Both endpoints'
// admission limits are checked before any row is written.
//
// The count check and the insert are not serialized against concurrent
// acceptances: under REPEATABLE READ two transactions can both pass the
// check and both commit, exceeding the limit by one. Known race, kept as a
// documented gap rather than taking row locks on the hot path.
func (s *ConnectionService) connectTx(tx *gorm.DB, ownerID, otherID string) (*model.Connection, error) {
	if ownerID == otherID {
		return nil, util.ErrSelfConnection
	}

	var existing int64
	if err := tx.Model(&model.Connection{}).
		Where("owner_id = ? AND other_user_id = ?", ownerID, otherID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, util.ErrAlreadyConnected
	}

	for _, id := range []string{ownerID, otherID} {
		count, err := s.ConnRepo.CountByOwner(tx, id)
		if err != nil {
			return nil, err
		}
		if count >= int64(s.Cfg.SocialLimits().MaxConnectionsPerUser) {
			return nil, util.ErrConnectionLimit
		}
	}

	conn := &model.Connection{OwnerID: ownerID, OtherUserID: otherID}
	if err := tx.Create(conn).Error; err != nil {
		return nil, err
	}

	opposite := &model.Connection{
		OwnerID:     otherID,
		OtherUserID: ownerID,
		OppositeID:  &conn.ID,
	}
	if err := tx.Create(opposite).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(conn).Update("opposite_id", opposite.ID).Error; err != nil {
		return nil, err
	}

	conn.OppositeID = &opposite.ID
	conn.Opposite = opposite
	opposite.Opposite = conn
	return conn, nil
}

func (s *ConnectionService) List(ownerID string) ([]model.Connection, error) {
	return s.ConnRepo.ListByOwner(ownerID)
}

func (s *ConnectionService) Get(ownerID, connectionID string) (*model.Connection, error) {
	conn, err := s.ConnRepo.FindByIDForOwner(connectionID, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return conn, nil
}

// Delete removes a connection; the mirror, both sides' circle memberships,
// conversation messages, and fan-out rows go with it via the store's
// cascades.
func (s *ConnectionService) Delete(ownerID, connectionID string) error {
	conn, err := s.ConnRepo.FindByIDForOwner(connectionID, ownerID)
	if err != nil {
		return notFound(err)
	}

	if err := s.ConnRepo.DB.Delete(&model.Connection{}, "id = ?", conn.ID).Error; err != nil {
		return err
	}

	s.ConnRepo.InvalidateCache(conn.OwnerID, conn.OtherUserID)
	return nil
}

func (s *ConnectionService) IsConnected(aID, bID string) (bool, error) {
	return s.ConnRepo.IsConnected(aID, bID)
}

// SetCircles replaces the circle set of a connection (bulk edit). Every
// target circle must belong to the connection's owner.
func (s *ConnectionService) SetCircles(ownerID, connectionID string, circleIDs []string) error {
	conn, err := s.ConnRepo.FindByIDForOwner(connectionID, ownerID)
	if err != nil {
		return notFound(err)
	}

	if len(circleIDs) > 0 {
		owned, err := s.CircleRepo.CountOwnedIn(s.ConnRepo.DB, ownerID, circleIDs)
		if err != nil {
			return err
		}
		if owned != int64(len(circleIDs)) {
			return util.ErrForeignCircle
		}
	}

	return s.ConnRepo.DB.Transaction(func(tx *gorm.DB) error {
		if len(circleIDs) == 0 {
			return tx.Where("connection_id = ?", conn.ID).
				Delete(&model.CircleMembership{}).Error
		}

		if err := tx.Where("connection_id = ? AND circle_id NOT IN ?", conn.ID, circleIDs).
			Delete(&model.CircleMembership{}).Error; err != nil {
			return err
		}

		for _, circleID := range circleIDs {
			var count int64
			if err := tx.Model(&model.CircleMembership{}).
				Where("circle_id = ? AND connection_id = ?", circleID, conn.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			m := &model.CircleMembership{CircleID: circleID, ConnectionID: conn.ID}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
