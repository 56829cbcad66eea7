package model

// swagger:model User
type User struct {
	UUIDBase
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`

	// Profile
	Name         string `gorm:"size:255" json:"name"`
	AvatarURL    string `gorm:"size:255" json:"avatar"`
	AvatarWidth  int    `gorm:"default:0" json:"avatarWidth"`
	AvatarHeight int    `gorm:"default:0" json:"avatarHeight"`

	// Settings
	Timezone        string `gorm:"size:64;default:''" json:"timezone"`
	AllowJS         bool   `gorm:"default:true" json:"allowJs"`
	ForegroundColor string `gorm:"size:16" json:"foregroundColor"`
	BackgroundColor string `gorm:"size:16" json:"backgroundColor"`
	ErrorColor      string `gorm:"size:16" json:"errorColor"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName falls back to the login handle when no name is set.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
