package model

import "time"

type Vendor struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreName  string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"store_name"`
	Email      string    `gorm:"type:varchar(255);not null" json:"email"`
	IsApproved bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
