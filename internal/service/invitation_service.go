package service

import (
	"circlenet_backend/internal/config"
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/repository"
	"circlenet_backend/internal/util"
	"circlenet_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type InvitationService struct {
	InvRepo     *repository.InvitationRepository
	CircleRepo  *repository.CircleRepository
	ConnRepo    *repository.ConnectionRepository
	Connections *ConnectionService
	Cfg         *config.Config
}

func NewInvitationService(invRepo *repository.InvitationRepository, circleRepo *repository.CircleRepository, connRepo *repository.ConnectionRepository, connections *ConnectionService, cfg *config.Config) *InvitationService {
	return &InvitationService{
		InvRepo:     invRepo,
		CircleRepo:  circleRepo,
		ConnRepo:    connRepo,
		Connections: connections,
		Cfg:         cfg,
	}
}

type CreateInvitationInput struct {
	Name      string
	Message   string
	IsOpen    bool
	CircleIDs []string
}

// Create issues an invitation. The circle set names where the inviter will
// file the eventual connection, so it must be non-empty and fully owned by
// the inviter. An inviter already at the admission limit cannot issue one.
func (s *InvitationService) Create(ownerID string, in CreateInvitationInput) (*model.Invitation, error) {
	if len(in.CircleIDs) == 0 {
		return nil, util.ErrEmptyCircleSet
	}

	owned, err := s.CircleRepo.CountOwnedIn(s.InvRepo.DB, ownerID, in.CircleIDs)
	if err != nil {
		return nil, err
	}
	if owned != int64(len(in.CircleIDs)) {
		return nil, util.ErrForeignCircle
	}

	count, err := s.ConnRepo.CountByOwner(s.ConnRepo.DB, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.Cfg.SocialLimits().MaxConnectionsPerUser) {
		return nil, util.ErrConnectionLimit
	}

	circles := make([]model.Circle, 0, len(in.CircleIDs))
	for _, id := range in.CircleIDs {
		circles = append(circles, model.Circle{UUIDBase: model.UUIDBase{ID: id}})
	}

	inv := &model.Invitation{
		OwnerID: ownerID,
		Name:    in.Name,
		Message: in.Message,
		IsOpen:  in.IsOpen,
	}

	err = s.InvRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		return tx.Model(inv).Association("Circles").Append(circles)
	})
	if err != nil {
		return nil, err
	}

	return s.InvRepo.FindByID(inv.ID)
}

func (s *InvitationService) List(ownerID string) ([]model.Invitation, error) {
	return s.InvRepo.ListByOwner(ownerID)
}

// Get loads an invitation for any holder of its ID. An invitation link is a
// capability, so this is deliberately not owner-scoped; expired personal
// invitations read as gone.
func (s *InvitationService) Get(invitationID string) (*model.Invitation, error) {
	inv, err := s.InvRepo.FindByID(invitationID)
	if err != nil {
		return nil, notFound(err)
	}
	if inv.IsExpired(s.Cfg.SocialLimits().InviteLifespan()) {
		return nil, util.ErrInvitationExpired
	}
	return inv, nil
}

func (s *InvitationService) Revoke(ownerID, invitationID string) error {
	inv, err := s.InvRepo.FindByIDForOwner(invitationID, ownerID)
	if err != nil {
		return notFound(err)
	}
	return s.InvRepo.DB.Transaction(func(tx *gorm.DB) error {
		return s.InvRepo.Delete(tx, inv)
	})
}

// Accept redeems an invitation. One transaction creates the connection
// pair, files the inviter's side into the invitation's circles and the
// accepter's side into the circles they chose, and burns the invitation if
// it is personal. Each side only ever picks circles for its own half of the
// pair.
func (s *InvitationService) Accept(accepterID, invitationID string, circleIDs []string) (*model.Connection, error) {
	inv, err := s.InvRepo.FindByID(invitationID)
	if err != nil {
		return nil, notFound(err)
	}
	if inv.IsExpired(s.Cfg.SocialLimits().InviteLifespan()) {
		return nil, util.ErrInvitationExpired
	}

	if len(circleIDs) == 0 {
		return nil, util.ErrEmptyCircleSet
	}
	owned, err := s.CircleRepo.CountOwnedIn(s.InvRepo.DB, accepterID, circleIDs)
	if err != nil {
		return nil, err
	}
	if owned != int64(len(circleIDs)) {
		return nil, util.ErrForeignCircle
	}

	connected, err := s.ConnRepo.IsConnected(inv.OwnerID, accepterID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, util.ErrAlreadyConnected
	}

	var conn *model.Connection
	err = s.InvRepo.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		conn, err = s.Connections.connectTx(tx, inv.OwnerID, accepterID)
		if err != nil {
			return err
		}

		for _, circle := range inv.Circles {
			if err := addMembershipTx(tx, circle.ID, conn.ID); err != nil {
				return err
			}
		}
		for _, circleID := range circleIDs {
			if err := addMembershipTx(tx, circleID, *conn.OppositeID); err != nil {
				return err
			}
		}

		if !inv.IsOpen {
			return s.InvRepo.Delete(tx, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.ConnRepo.InvalidateCache(inv.OwnerID, accepterID)
	monitoring.PairCreations.Inc()
	return conn, nil
}
