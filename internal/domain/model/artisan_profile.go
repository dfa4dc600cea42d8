package model

import "time"

// 作家プロフィール（users 1:1）
type ArtisanProfile struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Location    string    `gorm:"type:varchar(100)" json:"location"`
	Specialties string    `gorm:"type:varchar(255)" json:"specialties"` // カンマ区切り
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
