package model

import (
	"time"

	"gorm.io/gorm"
)

// 価格は最小通貨単位（セント）のint64で持つ
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Category      string         `gorm:"type:varchar(100);not null;index" json:"category"`
	Price         int64          `gorm:"not null" json:"price"`
	OriginalPrice int64          `gorm:"not null;default:0" json:"original_price,omitempty"`
	ArtisanID     int64          `gorm:"not null;index" json:"artisan_id"`
	ArtisanName   string         `gorm:"type:varchar(100);not null" json:"artisan_name"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	Featured      bool           `gorm:"not null;default:false;index" json:"featured"`
	Premium       bool           `gorm:"not null;default:false" json:"premium"`
	Rating        float64        `gorm:"not null;default:0" json:"rating"`
	Reviews       int64          `gorm:"not null;default:0" json:"reviews"`
	InStock       bool           `gorm:"not null;default:true;index" json:"in_stock"`
	Tags          string         `gorm:"type:varchar(255)" json:"tags,omitempty"` // カンマ区切り
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
