package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"around_backend/internal/feature/cards/domain"
	"around_backend/internal/feature/cards/domain/entity"
	"around_backend/internal/feature/cards/usecase"
	useradapters "around_backend/internal/feature/users/adapters"
	usersdomain "around_backend/internal/feature/users/domain"
	"around_backend/internal/platform/db"
)

// cardGorm implements CardRepository on gorm (postgres or sqlite).
type cardGorm struct {
	db *gorm.DB
}

var _ usecase.CardRepository = (*cardGorm)(nil)

// NewCardGorm creates a new cardGorm on the given connection.
func NewCardGorm(gdb *gorm.DB) *cardGorm {
	return &cardGorm{db: gdb}
}

// withAssociations preloads the owner's public fields and the likes in like order.
func withAssociations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Owner", func(db *gorm.DB) *gorm.DB { return db.Select(useradapters.PublicColumns) }).
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

// List returns all cards ordered by creation time.
func (r *cardGorm) List(ctx context.Context) ([]entity.Card, error) {
	var models []CardModel
	if err := withAssociations(r.db.WithContext(ctx)).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Card, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToEntity())
	}
	return out, nil
}

// Create inserts the card row only; the owner must already exist.
func (r *cardGorm) Create(ctx context.Context, card *entity.Card) error {
	m := &CardModel{
		Name:    card.Name,
		Link:    card.Link,
		OwnerID: card.Owner.ID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return usersdomain.ErrUserNotFound
		}
		return fmt.Errorf("insert card: %w", err)
	}
	card.ID = m.ID
	card.CreatedAt = m.CreatedAt
	return nil
}

// FindByID returns the card with owner and likes.
func (r *cardGorm) FindByID(ctx context.Context, id string) (*entity.Card, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var m CardModel
	if err := withAssociations(r.db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	card := m.ToEntity()
	return &card, nil
}

// Delete removes the card and its likes in one transaction.
func (r *cardGorm) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&CardLikeModel{}).Error; err != nil {
			return fmt.Errorf("delete likes: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&CardModel{})
		if res.Error != nil {
			return fmt.Errorf("delete card: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrCardNotFound
		}
		return nil
	})
}

// AddLike inserts the like unless it already exists.
func (r *cardGorm) AddLike(ctx context.Context, cardID, userID string) (*entity.Card, error) {
	if err := r.ensureExists(ctx, cardID); err != nil {
		return nil, err
	}
	like := &CardLikeModel{CardID: cardID, UserID: userID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
		// The card was deleted between the existence check and the insert.
		if db.IsForeignKeyViolation(err) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("insert like: %w", err)
	}
	return r.FindByID(ctx, cardID)
}

// RemoveLike deletes the like if present.
func (r *cardGorm) RemoveLike(ctx context.Context, cardID, userID string) (*entity.Card, error) {
	if err := r.ensureExists(ctx, cardID); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("card_id = ? AND user_id = ?", cardID, userID).
		Delete(&CardLikeModel{}).Error; err != nil {
		return nil, fmt.Errorf("delete like: %w", err)
	}
	return r.FindByID(ctx, cardID)
}

func (r *cardGorm) ensureExists(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&CardModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}
