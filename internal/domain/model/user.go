package model

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	IsArtisan    bool   `gorm:"not null;default:false" json:"is_artisan"`
	ProfileImage string `gorm:"type:varchar(500)" json:"profile_image,omitempty"`

	// 作家ユーザーのみ持つ
	ArtisanProfile *ArtisanProfile `gorm:"foreignKey:UserID" json:"artisan_profile,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
