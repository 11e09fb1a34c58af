package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name               string `gorm:"not null"`
	Email              string `gorm:"uniqueIndex;not null"`
	PasswordHash       string `gorm:"not null"`
	Role               string `gorm:"not null"` // "ADMIN", "PROJECT_MANAGER", "TEKKIE"
	Avatar             string
	MustChangePassword bool `gorm:"default:false"`

	// Relationships
	CreatedProjects    []Project           `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	ProjectMemberships []ProjectMembership `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Messages           []ProjectMessage    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notes              []UserNote          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
