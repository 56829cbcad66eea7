package model

// Intro proposes that the receiver connect with the introduced account.
// Intros are created two at a time, one per party being introduced; the
// second is created in the same transaction with receiver and introduced
// swapped, linked through opposite_id. List an account's intros only
// through receiver_id — querying both sides returns intros not directed at
// the account.
//
// A connection is created exactly when both mirrored intros have been
// accepted, no matter which side accepted first.
type Intro struct {
	UUIDBase
	SenderID     string `gorm:"type:varchar(36);not null;index" json:"senderId"`
	Sender       User   `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	ReceiverID   string `gorm:"type:varchar(36);not null;index" json:"receiverId"`
	Receiver     User   `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	IntroducedID string `gorm:"type:varchar(36);not null;index" json:"introducedId"`
	Introduced   User   `gorm:"foreignKey:IntroducedID;constraint:OnDelete:CASCADE" json:"introduced,omitempty"`

	OppositeID *string `gorm:"type:varchar(36)" json:"oppositeId"`
	Opposite   *Intro  `gorm:"foreignKey:OppositeID;constraint:OnDelete:CASCADE" json:"-"`

	IsAccepted bool `gorm:"default:false" json:"isAccepted"`
}

func (Intro) TableName() string {
	return "intros"
}
