package main

import (
	"log"
	"os"
	"time"

	"github.com/crewtrack/crewtrack/db"
	"github.com/crewtrack/crewtrack/internal/config"
	"github.com/crewtrack/crewtrack/internal/models"
	"github.com/crewtrack/crewtrack/internal/types"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(os.Getenv("DB_CONFIG_PATH"))

	if err != nil {
		log.Fatalf("Failed to load database config: %v", err)
	}

	if err := db.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var count int64

	if err := db.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count users: %v", err)
	}

	if count > 0 {
		log.Println("Database already seeded, skipping")
		return
	}

	log.Println("Seeding database...")

	admin := createUser("Admin User", "admin@empresa.pt", "admin123", types.RoleAdmin)
	pm := createUser("Project Manager", "pm@empresa.pt", "pm123", types.RoleProjectManager)
	alice := createUser("Alice Tekkie", "alice@empresa.pt", "tekkie123", types.RoleTekkie)
	bob := createUser("Bob Coder", "bob@empresa.pt", "tekkie123", types.RoleTekkie)
	charlie := createUser("Charlie Dev", "charlie@empresa.pt", "tekkie123", types.RoleTekkie)

	log.Println("Users created")

	platform := createProject(models.Project{
		Name:         "Vibe Coding Platform",
		Client:       "Startup X",
		StartDate:    date("2023-10-01"),
		EndDate:      date("2024-03-01"),
		Manager:      pm.Name,
		Requirements: "A high-energy coding platform for rapid prototyping.",
		Suggestions:  "Focus on dark mode and neon accents.",
		CreatedBy:    pm.ID,
		Status:       types.StatusActive,
	})

	shop := createProject(models.Project{
		Name:         "E-Commerce Redesign",
		Client:       "ShopifyStore",
		StartDate:    date("2023-11-15"),
		EndDate:      date("2024-01-30"),
		Manager:      pm.Name,
		Requirements: "Revamp the checkout flow for higher conversion.",
		Suggestions:  "Make it seamless and mobile-first.",
		CreatedBy:    pm.ID,
		Status:       types.StatusDelayed,
	})

	dashboard := createProject(models.Project{
		Name:         "Internal Dashboard",
		Client:       "Internal",
		StartDate:    date("2024-01-01"),
		EndDate:      date("2024-06-01"),
		Manager:      admin.Name,
		Requirements: "Tool for managing resources.",
		Suggestions:  "Keep it simple.",
		CreatedBy:    admin.ID,
		Status:       types.StatusActive,
	})

	log.Println("Projects created")

	assign(platform, pm, alice, bob)
	assign(shop, pm, charlie)
	assign(dashboard, admin, alice, bob, charlie)

	log.Println("Team members assigned")
	log.Println("Seeding complete")
	log.Println("Login credentials:")
	log.Println("  Admin:  admin@empresa.pt / admin123")
	log.Println("  PM:     pm@empresa.pt / pm123")
	log.Println("  Tekkie: alice@empresa.pt / tekkie123")
}

func createUser(name, email, password, role string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:               name,
		Email:              email,
		PasswordHash:       string(hash),
		Role:               role,
		MustChangePassword: true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}

	return user
}

func createProject(project models.Project) models.Project {
	if err := db.DB.Create(&project).Error; err != nil {
		log.Fatalf("Failed to create project %s: %v", project.Name, err)
	}

	return project
}

func assign(project models.Project, users ...models.User) {
	for _, user := range users {
		membership := models.ProjectMembership{ProjectID: project.ID, UserID: user.ID}

		if err := db.DB.Create(&membership).Error; err != nil {
			log.Fatalf("Failed to assign user %d to project %d: %v", user.ID, project.ID, err)
		}
	}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)

	if err != nil {
		log.Fatalf("Invalid date %q: %v", s, err)
	}

	return t
}
