// Package entity defines the domain entities for the cards feature.
package entity

import (
	"time"

	userentity "around_backend/internal/feature/users/domain/entity"
)

// Card is an image post.
type Card struct {
	ID   string
	Name string
	Link string
	// Owner is the author. Stores populate the public profile fields on reads.
	Owner userentity.User
	// Likes holds the ids of users who liked the card, each at most once.
	Likes     []string
	CreatedAt time.Time
}

// IsOwnedBy reports whether userID authored the card.
func (c *Card) IsOwnedBy(userID string) bool {
	return userID != "" && c.Owner.ID == userID
}
