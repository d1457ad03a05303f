package model

import "time"

type Brawler struct {
	ID          uint      `gorm:"primaryKey" json:"id" yaml:"id,omitempty"`
	CreatedAt   time.Time `json:"-" yaml:"-"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username" yaml:"username"`
	DisplayName string    `json:"display_name" yaml:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
}

func (b *Brawler) GetDisplayName() string {
	if b == nil {
		return ""
	}

	if b.DisplayName != "" {
		return b.DisplayName
	}

	return b.Username
}
