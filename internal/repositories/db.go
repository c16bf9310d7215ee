package repositories

import (
	"log"

	"github.com/Shoury-Rana/LinkCrate/internal/config"
	"github.com/Shoury-Rana/LinkCrate/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	dsn := config.Envs.DB_URL
	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which is how storage-path uniqueness races
	// surface from CreateShare.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Share{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	DB = db
	log.Println("Successfully connected to database")
}
