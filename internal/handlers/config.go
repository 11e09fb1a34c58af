package handlers

import (
	"log"
	"net/http"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/config"
	"github.com/gin-gonic/gin"
)

// ConfigPath is where the backend settings file lives. Overridable in
// tests.
var ConfigPath = config.DefaultPath

type SaveDatabaseConfigRequest struct {
	Type             string `json:"type" binding:"required,oneof=local external"`
	SQLitePath       string `json:"sqlitePath"`
	ConnectionString string `json:"connectionString"`
}

func GetDatabaseConfig(ctx *gin.Context) {
	cfg, err := config.Load(ConfigPath)

	if err != nil {
		log.Printf("Failed to load config: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load config"})
		return
	}

	ctx.JSON(http.StatusOK, cfg)
}

func SaveDatabaseConfig(ctx *gin.Context) {
	var body SaveDatabaseConfigRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cfg := &config.Database{
		Type:             body.Type,
		SQLitePath:       body.SQLitePath,
		ConnectionString: body.ConnectionString,
	}

	if err := config.Save(ConfigPath, cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save config"})
		return
	}

	// The settings file is only read at startup.
	ctx.JSON(http.StatusOK, gin.H{"message": "Configuration saved. Restart the server to apply."})
}

func DownloadSchema(ctx *gin.Context) {
	schema, err := db.SchemaSQL()

	if err != nil {
		log.Printf("Failed to generate schema: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate schema"})
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=schema.sql")
	ctx.Data(http.StatusOK, "text/plain", []byte(schema))
}
