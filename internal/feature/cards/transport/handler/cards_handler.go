// Package handler provides the HTTP handlers of the cards feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"around_backend/internal/feature/cards/domain/entity"
	"around_backend/internal/feature/cards/transport/http/dto"
	jwtmw "around_backend/internal/platform/jwt"
	"around_backend/internal/platform/validation"
)

// MsgCardDeleted is the body message of a successful delete.
const MsgCardDeleted = "Card deleted"

// CardsUsecase defines the card operations used by the handlers.
type CardsUsecase interface {
	List(ctx context.Context) ([]entity.Card, error)
	Create(ctx context.Context, ownerID, name, link string) (*entity.Card, error)
	Delete(ctx context.Context, cardID, userID string) error
	Like(ctx context.Context, cardID, userID string) (*entity.Card, error)
	Unlike(ctx context.Context, cardID, userID string) (*entity.Card, error)
}

// CardsHandler serves the /cards routes. Every route requires authentication.
type CardsHandler struct {
	cards CardsUsecase
}

// NewCardsHandler creates a new CardsHandler.
func NewCardsHandler(cards CardsUsecase) *CardsHandler {
	return &CardsHandler{cards: cards}
}

// List handles GET /cards.
func (h *CardsHandler) List(c *gin.Context) {
	cards, err := h.cards.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCardListResponse(cards))
}

// Create handles POST /cards. The caller becomes the owner.
func (h *CardsHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		_ = c.Error(jwtmw.ErrAuthorizationRequired)
		return
	}
	var req dto.CreateCardRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	card, err := h.cards.Create(c.Request.Context(), userID, req.Name, req.Link)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCardResponse(*card))
}

// Delete handles DELETE /cards/:cardId.
func (h *CardsHandler) Delete(c *gin.Context) {
	userID, cardID, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.cards.Delete(c.Request.Context(), cardID, userID); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: MsgCardDeleted})
}

// Like handles PUT /cards/:cardId/likes.
func (h *CardsHandler) Like(c *gin.Context) {
	h.updateLikes(c, h.cards.Like)
}

// Unlike handles DELETE /cards/:cardId/likes.
func (h *CardsHandler) Unlike(c *gin.Context) {
	h.updateLikes(c, h.cards.Unlike)
}

func (h *CardsHandler) updateLikes(c *gin.Context, op func(ctx context.Context, cardID, userID string) (*entity.Card, error)) {
	userID, cardID, ok := h.target(c)
	if !ok {
		return
	}
	card, err := op(c.Request.Context(), cardID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCardResponse(*card))
}

// target resolves the caller and the card id, recording the error when either is missing.
func (h *CardsHandler) target(c *gin.Context) (userID, cardID string, ok bool) {
	userID, ok = jwtmw.UserIDFrom(c)
	if !ok {
		_ = c.Error(jwtmw.ErrAuthorizationRequired)
		return "", "", false
	}
	var params dto.CardIDParams
	if err := validation.BindURI(c, &params); err != nil {
		_ = c.Error(err)
		return "", "", false
	}
	return userID, params.CardID, true
}
