package db

import (
	"fmt"

	"github.com/crewtrack/crewtrack/internal/config"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the backend chosen in the settings file:
// an embedded sqlite file or an external postgres server.
func ConnectDatabase(cfg *config.Database) error {
	var dialector gorm.Dialector

	switch cfg.Type {
	case config.BackendExternal:
		if cfg.ConnectionString == "" {
			return fmt.Errorf("external backend selected but no connection string configured")
		}
		dialector = postgres.Open(cfg.ConnectionString)
	case config.BackendLocal, "":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return fmt.Errorf("unknown database backend %q", cfg.Type)
	}

	var err error

	DB, err = gorm.Open(dialector, &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.ProjectMessage{},
		&models.ProjectMeeting{},
		&models.UserNote{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
