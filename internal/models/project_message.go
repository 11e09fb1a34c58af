package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectMessage struct {
	gorm.Model

	ProjectID uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Content   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
