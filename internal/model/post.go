package model

// Post is owned content with free text and/or an image. A post becomes
// visible by being published to a set of the owner's circles, which writes
// post_circles rows and fans out post_users rows for every membership the
// circle has at that moment. Visibility is frozen at publish time:
// memberships added later never see older posts.
type Post struct {
	UUIDBase
	OwnerID string `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`

	Text     string `gorm:"size:1024" json:"text"`
	ImageURL string `gorm:"size:255" json:"imageUrl"`
}

func (Post) TableName() string {
	return "posts"
}

// PostCircle records that a post was published to a circle.
type PostCircle struct {
	UUIDBase
	CircleID string `gorm:"uniqueIndex:idx_post_circle;type:varchar(36);not null;index" json:"circleId"`
	Circle   Circle `gorm:"foreignKey:CircleID;constraint:OnDelete:CASCADE" json:"-"`
	PostID   string `gorm:"uniqueIndex:idx_post_circle;type:varchar(36);not null;index" json:"postId"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostCircle) TableName() string {
	return "post_circles"
}

// PostUser is the denormalized visibility index: one row per (publication,
// membership) pair existing at publish time. Deleting the circle, the
// connection, the membership, or the post-circle link cascades here, which
// removes the post from the affected feed immediately.
type PostUser struct {
	UUIDBase
	PostCircleID       string           `gorm:"type:varchar(36);not null;index" json:"postCircleId"`
	PostCircle         PostCircle       `gorm:"foreignKey:PostCircleID;constraint:OnDelete:CASCADE" json:"-"`
	CircleMembershipID string           `gorm:"type:varchar(36);not null;index" json:"circleMembershipId"`
	CircleMembership   CircleMembership `gorm:"foreignKey:CircleMembershipID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostUser) TableName() string {
	return "post_users"
}
