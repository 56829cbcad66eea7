package model

// Circle is a named, owner-scoped grouping used to scope post visibility.
// (name, owner) is unique per account.
type Circle struct {
	UUIDBase
	Name    string `gorm:"size:64;uniqueIndex:idx_circle_name_owner;not null" json:"name"`
	Color   string `gorm:"size:16" json:"color"`
	OwnerID string `gorm:"uniqueIndex:idx_circle_name_owner;type:varchar(36);not null;index" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Circle) TableName() string {
	return "circles"
}

// CircleMembership places the other party of a connection into one of the
// connection owner's circles. The circle's owner always equals the
// connection's owner; the service layer refuses to create a row otherwise.
type CircleMembership struct {
	UUIDBase
	CircleID     string     `gorm:"uniqueIndex:idx_membership_circle_conn;type:varchar(36);not null;index" json:"circleId"`
	Circle       Circle     `gorm:"foreignKey:CircleID;constraint:OnDelete:CASCADE" json:"-"`
	ConnectionID string     `gorm:"uniqueIndex:idx_membership_circle_conn;type:varchar(36);not null;index" json:"connectionId"`
	Connection   Connection `gorm:"foreignKey:ConnectionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CircleMembership) TableName() string {
	return "circle_memberships"
}
