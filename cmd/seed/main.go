package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bakemart/backend/config"
	"github.com/bakemart/backend/pkg/helpers"
)

// Seeds a demo admin, an approved baker with a few listings, and a buyer.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	adminID := seedProfile(db, "admin@bakemart.dev", hash, "Demo Admin", "", "admin", true)
	bakerID := seedProfile(db, "baker@bakemart.dev", hash, "Demo Baker", "0812345678", "baker", true)
	buyerID := seedProfile(db, "buyer@bakemart.dev", hash, "Demo Buyer", "0898765432", "buyer", false)
	fmt.Printf("seeded profiles: admin=%s baker=%s buyer=%s password=%s\n", adminID, bakerID, buyerID, password)

	seedProduct(db, bakerID, "Sourdough Loaf", 8.50, "Slow-fermented country sourdough", "bread")
	seedProduct(db, bakerID, "Chocolate Babka", 12.00, "Twisted brioche with dark chocolate", "pastry")
	seedProduct(db, bakerID, "Blueberry Muffins", 6.00, "Box of four, baked daily", "muffin")
	fmt.Println("seeded products for demo baker")
}

func seedProfile(db *sql.DB, email, hash, fullName, phone, role string, approved bool) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO profiles (email, password_hash, full_name, phone, role, is_verified, is_approved)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name, role = EXCLUDED.role
		RETURNING id
	`, email, hash, fullName, phone, role, approved).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed profile %s: %v", email, err)
	}
	return id
}

func seedProduct(db *sql.DB, bakerID, name string, price float64, description, category string) {
	_, err := db.Exec(`
		INSERT INTO products (baker_id, name, price, description, category)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (SELECT 1 FROM products WHERE baker_id = $1 AND name = $2)
	`, bakerID, name, price, description, category)
	if err != nil {
		log.Fatalf("failed to seed product %s: %v", name, err)
	}
}
