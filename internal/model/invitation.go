package model

import (
	"time"
)

// Invitation grants its holder the ability to connect with the owner and be
// placed into the attached circles. Open invitations are reusable and never
// expire; personal invitations are single-use and expire a configured
// lifespan after creation.
type Invitation struct {
	UUIDBase
	OwnerID string `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`

	Name    string `gorm:"size:256" json:"name"`
	Message string `gorm:"size:1024" json:"message"`
	IsOpen  bool   `gorm:"default:false" json:"isOpen"`

	Circles []Circle `gorm:"many2many:invitation_circles;constraint:OnDelete:CASCADE" json:"circles,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}

// ExpiresAt is only meaningful for personal invitations.
func (i *Invitation) ExpiresAt(lifespan time.Duration) time.Time {
	return i.CreatedAt.Add(lifespan)
}

func (i *Invitation) IsExpired(lifespan time.Duration) bool {
	if i.IsOpen {
		return false
	}
	return time.Now().After(i.ExpiresAt(lifespan))
}

// Type is a display convenience.
func (i *Invitation) Type() string {
	if i.IsOpen {
		return "Open"
	}
	return "Personal"
}
