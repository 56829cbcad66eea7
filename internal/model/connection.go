package model

// Connection is one direction of a mirrored relationship edge. Every
// connection has an opposite connection created in the same transaction, so
// the full set of an account's connections is exactly the rows with
// owner_id = account — never query both sides with an OR, that returns each
// edge twice.
//
// The opposite_id foreign keys cascade in both directions: deleting either
// row deletes its mirror, and deleting either row's circle memberships and
// fan-out rows follows from their own cascades.
type Connection struct {
	UUIDBase
	OwnerID     string `gorm:"uniqueIndex:idx_conn_owner_other;type:varchar(36);not null;index" json:"ownerId"`
	Owner       User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	OtherUserID string `gorm:"uniqueIndex:idx_conn_owner_other;type:varchar(36);not null;index" json:"otherUserId"`
	OtherUser   User   `gorm:"foreignKey:OtherUserID;constraint:OnDelete:CASCADE" json:"otherUser,omitempty"`

	OppositeID *string     `gorm:"type:varchar(36)" json:"oppositeId"`
	Opposite   *Connection `gorm:"foreignKey:OppositeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Connection) TableName() string {
	return "connections"
}
