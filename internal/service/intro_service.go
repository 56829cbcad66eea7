package service

import (
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/repository"
	"circlenet_backend/internal/util"
	"circlenet_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// IntroService handles introductions: one account proposing that two of its
// connections get to know each other. Like connections, intros live as
// mirrored pairs, one row per receiving side.
type IntroService struct {
	IntroRepo   *repository.IntroRepository
	ConnRepo    *repository.ConnectionRepository
	UserRepo    *repository.UserRepository
	Connections *ConnectionService
}

func NewIntroService(introRepo *repository.IntroRepository, connRepo *repository.ConnectionRepository, userRepo *repository.UserRepository, connections *ConnectionService) *IntroService {
	return &IntroService{
		IntroRepo:   introRepo,
		ConnRepo:    connRepo,
		UserRepo:    userRepo,
		Connections: connections,
	}
}

// Create writes the mirrored intro pair: one row shown to each of the two
// introduced accounts, each naming the other as the introduced party.
func (s *IntroService) Create(senderID, receiverID, introducedID string) (*model.Intro, error) {
	if receiverID == introducedID {
		return nil, util.ErrSelfIntro
	}

	if _, err := s.UserRepo.FindByID(receiverID); err != nil {
		return nil, notFound(err)
	}
	if _, err := s.UserRepo.FindByID(introducedID); err != nil {
		return nil, notFound(err)
	}

	var intro *model.Intro
	err := s.IntroRepo.DB.Transaction(func(tx *gorm.DB) error {
		intro = &model.Intro{
			SenderID:     senderID,
			ReceiverID:   receiverID,
			IntroducedID: introducedID,
		}
		if err := tx.Create(intro).Error; err != nil {
			return err
		}

		opposite := &model.Intro{
			SenderID:     senderID,
			ReceiverID:   introducedID,
			IntroducedID: receiverID,
			OppositeID:   &intro.ID,
		}
		if err := tx.Create(opposite).Error; err != nil {
			return err
		}

		if err := tx.Model(intro).Update("opposite_id", opposite.ID).Error; err != nil {
			return err
		}
		intro.OppositeID = &opposite.ID
		intro.Opposite = opposite
		return nil
	})
	if err != nil {
		return nil, err
	}
	return intro, nil
}

// Accept marks the caller's side accepted. When the mirror side has already
// accepted too, the connection pair is created in the same transaction; the
// second acceptance is the one that pays the admission checks.
func (s *IntroService) Accept(accountID, introID string) (*model.Intro, error) {
	intro, err := s.IntroRepo.FindByIDForReceiver(introID, accountID)
	if err != nil {
		return nil, notFound(err)
	}
	if intro.IsAccepted {
		return intro, nil
	}

	paired := false
	err = s.IntroRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(intro).Update("is_accepted", true).Error; err != nil {
			return err
		}
		intro.IsAccepted = true

		if intro.OppositeID == nil {
			return nil
		}
		var opposite model.Intro
		if err := tx.First(&opposite, "id = ?", *intro.OppositeID).Error; err != nil {
			return err
		}
		if !opposite.IsAccepted {
			return nil
		}

		connected, err := s.ConnRepo.IsConnected(intro.ReceiverID, intro.IntroducedID)
		if err != nil {
			return err
		}
		if connected {
			return util.ErrAlreadyConnected
		}

		if _, err := s.Connections.connectTx(tx, intro.ReceiverID, intro.IntroducedID); err != nil {
			return err
		}
		paired = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if paired {
		s.ConnRepo.InvalidateCache(intro.ReceiverID, intro.IntroducedID)
		monitoring.PairCreations.Inc()
	}
	return intro, nil
}

// ListOpen returns the caller's pending intros, skipping any whose
// introduced account has become a connection in the meantime.
func (s *IntroService) ListOpen(accountID string) ([]model.Intro, error) {
	connectedIDs, err := s.ConnRepo.ConnectedIDs(accountID)
	if err != nil {
		return nil, err
	}
	return s.IntroRepo.ListOpenForReceiver(accountID, connectedIDs)
}
