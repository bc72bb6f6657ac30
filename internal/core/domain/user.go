package domain

import "time"

// User models a playground account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Picture      string    `json:"picture,omitempty"`
	SavedCodes   []string  `json:"savedCodes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SavedCode is a snippet owned by a user. The User record only carries the
// reference IDs; the my-codes listing returns these expanded documents.
type SavedCode struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
}
