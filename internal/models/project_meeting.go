package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectMeeting struct {
	gorm.Model

	ProjectID uint      `gorm:"not null;index"`
	Date      time.Time `gorm:"not null"`
	Feedback  string    `gorm:"not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
