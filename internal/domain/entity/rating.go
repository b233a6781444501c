package entity

import "time"

// Rating is a buyer's 1-5 score for a product. One rating per
// (product, user); the unique index in storage enforces it.
type Rating struct {
	ID        string
	ProductID string
	UserID    string
	Score     int
	CreatedAt time.Time
}
