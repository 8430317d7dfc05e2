package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"careconnect/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment variables and
// migrates the schema.
func InitDB() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	// Load environment variables (with defaults)
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "careconnect")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	// Build Data Source Name
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	// Assign to global
	DB = db
}

// Migrate applies the schema for every model and seeds the default platform
// settings. Shared with tests, which run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.CaregiverProfile{},
		&models.CareSeekerProfile{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
		&models.Conversation{},
		&models.Message{},
		&models.CareRequest{},
		&models.Testimonial{},
		&models.SystemSetting{},
	); err != nil {
		return err
	}
	return seedSettings(db)
}

var defaultSettings = []models.SystemSetting{
	{Key: "platform_commission_rate", Value: "0.15", Type: "number", Description: "Platform commission rate"},
	{Key: "minimum_booking_hours", Value: "2", Type: "number", Description: "Minimum booking duration in hours"},
	{Key: "maximum_booking_hours", Value: "12", Type: "number", Description: "Maximum booking duration in hours"},
	{Key: "auto_approve_caregivers", Value: "false", Type: "boolean", Description: "Automatically approve caregiver profiles"},
	{Key: "require_background_check", Value: "true", Type: "boolean", Description: "Require background check for caregivers"},
}

// seedSettings inserts any default setting rows that are missing. Existing
// values are never overwritten.
func seedSettings(db *gorm.DB) error {
	for _, s := range defaultSettings {
		if err := db.Where("key = ?", s.Key).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}
	return nil
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
