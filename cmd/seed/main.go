package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// seedService is a catalog entry inserted on first run
type seedService struct {
	Name        string
	Description string
	BasePrice   float64
	Icon        string
}

// seedUser is an account inserted on first run
type seedUser struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	connStr := getEnv("DB_URL", "host=localhost port=5432 user=postgres dbname=localbookr sslmode=disable TimeZone=UTC")

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("✅ Successfully connected to database")

	seedServices(db)
	seedUsers(db)

	log.Println("🎉 Seeding complete")
}

func seedServices(db *sql.DB) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM services").Scan(&count); err != nil {
		log.Fatal("Failed to check services count:", err)
	}

	if count > 0 {
		log.Printf("⚠️  Services already exist (%d services found). Skipping insertion.", count)
		return
	}

	services := []seedService{
		{
			Name:        "Plumber",
			Description: "Leak repair, tap and fitting installation, drainage and bathroom plumbing work.",
			BasePrice:   400,
			Icon:        "Wrench",
		},
		{
			Name:        "Electrician",
			Description: "Wiring, switchboard repair, appliance installation and electrical fault finding.",
			BasePrice:   350,
			Icon:        "Zap",
		},
		{
			Name:        "Cleaner",
			Description: "Deep home cleaning, kitchen and bathroom cleaning, move-in and move-out cleans.",
			BasePrice:   800,
			Icon:        "SprayCan",
		},
		{
			Name:        "Tutor",
			Description: "Home tuition for school subjects with personalised lesson plans.",
			BasePrice:   500,
			Icon:        "BookOpen",
		},
	}

	insertQuery := `
		INSERT INTO services (name, description, base_price, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	for _, service := range services {
		if _, err := db.Exec(insertQuery,
			service.Name, service.Description, service.BasePrice, service.Icon, now, now,
		); err != nil {
			log.Fatalf("Failed to insert service %s: %v", service.Name, err)
		}
		log.Printf("✅ Inserted service: %s", service.Name)
	}
}

func seedUsers(db *sql.DB) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'ADMIN'").Scan(&count); err != nil {
		log.Fatal("Failed to check users count:", err)
	}

	if count > 0 {
		log.Printf("⚠️  Admin account already exists. Skipping user insertion.")
		return
	}

	users := []seedUser{
		{
			Name:     "Admin",
			Email:    "admin@localbookr.in",
			Phone:    "+911234567890",
			Password: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
			Role:     "ADMIN",
		},
		{
			Name:     "Demo Customer",
			Email:    "customer@localbookr.in",
			Phone:    "+919876543210",
			Password: getEnv("SEED_CUSTOMER_PASSWORD", "customer123"),
			Role:     "CUSTOMER",
		},
	}

	insertQuery := `
		INSERT INTO users (name, email, phone, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, $6, $7)
	`

	now := time.Now()
	for _, user := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", user.Email, err)
		}
		if _, err := db.Exec(insertQuery,
			user.Name, user.Email, user.Phone, string(hash), user.Role, now, now,
		); err != nil {
			log.Fatalf("Failed to insert user %s: %v", user.Email, err)
		}
		log.Printf("✅ Inserted %s account: %s", user.Role, user.Email)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
