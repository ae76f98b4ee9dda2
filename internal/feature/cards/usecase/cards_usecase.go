// Package usecase implements the business logic for the cards feature.
package usecase

import (
	"context"
	"fmt"

	"around_backend/internal/feature/cards/domain"
	"around_backend/internal/feature/cards/domain/entity"
	userentity "around_backend/internal/feature/users/domain/entity"
)

// CardRepository abstracts the card store. Reads return cards with the owner's public
// profile populated. Implementations return domain.ErrCardNotFound for absent cards and
// domain.ErrInvalidCardID for malformed ids.
type CardRepository interface {
	// List returns all cards ordered by creation time.
	List(ctx context.Context) ([]entity.Card, error)
	// Create persists the card and sets its ID and CreatedAt.
	Create(ctx context.Context, card *entity.Card) error
	FindByID(ctx context.Context, id string) (*entity.Card, error)
	Delete(ctx context.Context, id string) error
	// AddLike adds userID to the likes; repeated calls leave a single like.
	AddLike(ctx context.Context, cardID, userID string) (*entity.Card, error)
	// RemoveLike removes userID from the likes, if present.
	RemoveLike(ctx context.Context, cardID, userID string) (*entity.Card, error)
}

// cardsUsecase implements the card operations.
type cardsUsecase struct {
	cards CardRepository
}

// NewCardsUsecase creates a new cardsUsecase.
func NewCardsUsecase(cards CardRepository) *cardsUsecase {
	return &cardsUsecase{cards: cards}
}

// List returns every card. An empty store yields an empty slice.
func (u *cardsUsecase) List(ctx context.Context) ([]entity.Card, error) {
	cards, err := u.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	if cards == nil {
		cards = []entity.Card{}
	}
	return cards, nil
}

// Create stores a card owned by ownerID and returns it with the owner populated.
func (u *cardsUsecase) Create(ctx context.Context, ownerID, name, link string) (*entity.Card, error) {
	card := &entity.Card{
		Name:  name,
		Link:  link,
		Owner: userentity.User{ID: ownerID},
		Likes: []string{},
	}
	if err := u.cards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	created, err := u.cards.FindByID(ctx, card.ID)
	if err != nil {
		return nil, fmt.Errorf("load created card %s: %w", card.ID, err)
	}
	return created, nil
}

// Delete removes the card when userID owns it.
func (u *cardsUsecase) Delete(ctx context.Context, cardID, userID string) error {
	card, err := u.cards.FindByID(ctx, cardID)
	if err != nil {
		return fmt.Errorf("find card %s: %w", cardID, err)
	}
	if !card.IsOwnedBy(userID) {
		return domain.ErrCardNotOwned
	}
	if err := u.cards.Delete(ctx, cardID); err != nil {
		return fmt.Errorf("delete card %s: %w", cardID, err)
	}
	return nil
}

// Like adds userID to the card's likes and returns the updated card.
func (u *cardsUsecase) Like(ctx context.Context, cardID, userID string) (*entity.Card, error) {
	card, err := u.cards.AddLike(ctx, cardID, userID)
	if err != nil {
		return nil, fmt.Errorf("like card %s: %w", cardID, err)
	}
	return card, nil
}

// Unlike removes userID from the card's likes and returns the updated card.
func (u *cardsUsecase) Unlike(ctx context.Context, cardID, userID string) (*entity.Card, error) {
	card, err := u.cards.RemoveLike(ctx, cardID, userID)
	if err != nil {
		return nil, fmt.Errorf("unlike card %s: %w", cardID, err)
	}
	return card, nil
}
