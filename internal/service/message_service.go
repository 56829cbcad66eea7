package service

import (
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/repository"
	"circlenet_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// MessageService routes direct messages along connections. A message hangs
// off the sender's side of the pair, so "outgoing" is messages on your own
// connection row and "incoming" is messages on its mirror.
type MessageService struct {
	MsgRepo  *repository.MessageRepository
	ConnRepo *repository.ConnectionRepository
}

func NewMessageService(msgRepo *repository.MessageRepository, connRepo *repository.ConnectionRepository) *MessageService {
	return &MessageService{MsgRepo: msgRepo, ConnRepo: connRepo}
}

// Send delivers a message to a connected account. Without a connection
// there is no channel to send on.
func (s *MessageService) Send(senderID, otherUserID, text string) (*model.Message, error) {
	conn, err := s.ConnRepo.FindByOwnerAndOther(senderID, otherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotConnected
		}
		return nil, err
	}

	msg := &model.Message{ConnectionID: conn.ID, Text: text}
	if err := s.MsgRepo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// SendOn delivers a message over a connection the caller owns.
func (s *MessageService) SendOn(accountID, connectionID, text string) (*model.Message, error) {
	conn, err := s.ConnRepo.FindByIDForOwner(connectionID, accountID)
	if err != nil {
		return nil, notFound(err)
	}

	msg := &model.Message{ConnectionID: conn.ID, Text: text}
	if err := s.MsgRepo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Conversation returns the full two-way history over a connection, newest
// first.
func (s *MessageService) Conversation(accountID, connectionID string) ([]model.Message, error) {
	conn, err := s.ConnRepo.FindByIDForOwner(connectionID, accountID)
	if err != nil {
		return nil, notFound(err)
	}
	if conn.OppositeID == nil {
		return s.MsgRepo.Outgoing(conn.ID)
	}
	return s.MsgRepo.Conversation(conn.ID, *conn.OppositeID)
}

// MarkRead flags the incoming half of a conversation as read.
func (s *MessageService) MarkRead(accountID, connectionID string) error {
	conn, err := s.ConnRepo.FindByIDForOwner(connectionID, accountID)
	if err != nil {
		return notFound(err)
	}
	if conn.OppositeID == nil {
		return nil
	}
	return s.MsgRepo.MarkRead(*conn.OppositeID)
}

// Convo is one row of the conversation overview.
type Convo struct {
	Connection  model.Connection `json:"connection"`
	UnreadCount int64            `json:"unread_count"`
	LastMessage *model.Message   `json:"last_message,omitempty"`
}

// Convos lists every connection with its unread count and latest message,
// for the conversation overview screen.
func (s *MessageService) Convos(accountID string) ([]Convo, error) {
	conns, err := s.ConnRepo.ListByOwner(accountID)
	if err != nil {
		return nil, err
	}

	convos := make([]Convo, 0, len(conns))
	for _, conn := range conns {
		convo := Convo{Connection: conn}

		if conn.OppositeID != nil {
			unread, err := s.MsgRepo.UnreadCount(*conn.OppositeID)
			if err != nil {
				return nil, err
			}
			convo.UnreadCount = unread

			latest, err := s.MsgRepo.Latest(conn.ID, *conn.OppositeID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if err == nil {
				convo.LastMessage = latest
			}
		}

		convos = append(convos, convo)
	}
	return convos, nil
}
