package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Name         string    `gorm:"not null"`
	Client       string    `gorm:"not null"`
	StartDate    time.Time `gorm:"not null"`
	EndDate      time.Time `gorm:"not null"`
	Manager      string    `gorm:"not null"` // display name, not a foreign key
	Requirements string    `gorm:"not null"`
	Suggestions  string
	CreatedBy       uint `gorm:"not null;index"`
	UpdatedBy       *uint
	TechStack       datatypes.JSON `gorm:"type:jsonb"`
	Status          string         `gorm:"not null;default:active"` // "active", "completed", "delayed"
	GithubLink      string
	ClientContact   string
	ClientPhone     string
	ClientEmail     string
	EstimatedBudget string

	// Relationships
	Creator            User                `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectMemberships []ProjectMembership `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Messages           []ProjectMessage    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Meetings           []ProjectMeeting    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notes              []UserNote          `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// TechStackInfo is the shape stored in the TechStack JSON column.
type TechStackInfo struct {
	Frontend string `json:"frontend"`
	Backend  string `json:"backend"`
	DB       string `json:"db"`
	AIAgent  string `json:"aiAgent"`
	Other    string `json:"other"`
}
