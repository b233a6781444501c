package entity

import (
	"strings"
	"time"
)

// Product is a baker-owned listing. AverageRating and OrderCount are derived
// by the storage layer (aggregate queries), never written by the application.
type Product struct {
	ID            string
	Name          string
	Price         float64
	Description   string
	ImageURL      string
	Category      string
	BakerID       string
	BakerName     string // joined from the owning profile on reads
	BakerPhone    string
	AverageRating float64
	OrderCount    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeCategory lower-cases and trims a free-text category so listings
// group consistently.
func NormalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
