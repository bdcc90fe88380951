package database

import (
	"fmt"
	"log"

	config "github.com/craftfolio/api/configs"
	"github.com/craftfolio/api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		// TranslateError maps unique violations to gorm.ErrDuplicatedKey,
		// which the conversation-create race handler depends on.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Project{},
		&models.ProjectImage{},
		&models.Review{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.MessageReceipt{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

var defaultCategories = []models.Category{
	{Slug: "web", Name: "Web Development"},
	{Slug: "mobile", Name: "Mobile Apps"},
	{Slug: "design", Name: "UI & Design"},
	{Slug: "game", Name: "Game Development"},
	{Slug: "data", Name: "Data & Machine Learning"},
	{Slug: "hardware", Name: "Hardware & IoT"},
	{Slug: "other", Name: "Other"},
}

func SeedCategories() {
	var count int64
	if err := DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check categories: %v", err)
		return
	}

	if count > 0 {
		log.Println("Categories already seeded.")
		return
	}

	if err := DB.Create(&defaultCategories).Error; err != nil {
		log.Fatalf("🔥 Failed to seed categories: %v", err)
		return
	}

	log.Println("✅ Categories seeded successfully")
}
