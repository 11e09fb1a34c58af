package models

import "gorm.io/gorm"

type UserNote struct {
	gorm.Model

	ProjectID        uint `gorm:"not null;uniqueIndex:idx_note_project_user"`
	UserID           uint `gorm:"not null;uniqueIndex:idx_note_project_user"`
	StackSuggestions string
	TechnicalNotes   string

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
