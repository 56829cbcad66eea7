package model

// Message belongs to one side of a mirrored connection pair: it is
// "outgoing" from its connection's owner and "incoming" when read through
// the mirror.
type Message struct {
	UUIDBase
	ConnectionID string     `gorm:"type:varchar(36);not null;index" json:"connectionId"`
	Connection   Connection `gorm:"foreignKey:ConnectionID;constraint:OnDelete:CASCADE" json:"-"`

	Text   string `gorm:"size:1024;not null" json:"text"`
	IsRead bool   `gorm:"default:false" json:"isRead"`
}

func (Message) TableName() string {
	return "messages"
}
