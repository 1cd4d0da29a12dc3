package entity

import "time"

// Car is listed for sale by a single user (the seller).
type Car struct {
	ID        string    `json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	SellerID  string    `json:"seller"`
	CreatedAt time.Time `json:"createdAt"`
}
