// Package dto holds the wire types of the cards endpoints.
package dto

import (
	"time"

	"around_backend/internal/feature/cards/domain/entity"
	userdto "around_backend/internal/feature/users/transport/http/dto"
)

// CardResponse is the public form of a card with its owner populated.
type CardResponse struct {
	ID        string               `json:"_id"`
	Name      string               `json:"name"`
	Link      string               `json:"link"`
	Owner     userdto.UserResponse `json:"owner"`
	Likes     []string             `json:"likes"`
	CreatedAt time.Time            `json:"createdAt"`
}

// NewCardResponse converts a domain card. Likes is never nil.
func NewCardResponse(c entity.Card) CardResponse {
	likes := c.Likes
	if likes == nil {
		likes = []string{}
	}
	return CardResponse{
		ID:        c.ID,
		Name:      c.Name,
		Link:      c.Link,
		Owner:     userdto.NewUserResponse(c.Owner),
		Likes:     likes,
		CreatedAt: c.CreatedAt,
	}
}

// NewCardListResponse converts cards to their public form. The result is never nil.
func NewCardListResponse(cards []entity.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewCardResponse(c))
	}
	return out
}

// CreateCardRequest is the body of POST /cards.
type CreateCardRequest struct {
	Name string `json:"name" binding:"required,min=2,max=30"`
	Link string `json:"link" binding:"required,weburl"`
}

// CardIDParams are the path parameters of the /cards/:cardId routes.
type CardIDParams struct {
	CardID string `uri:"cardId" binding:"required,objectid"`
}

// MessageResponse is a bare confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
