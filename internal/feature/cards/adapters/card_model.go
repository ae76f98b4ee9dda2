// Package adapters provides the store implementations of the card repository.
package adapters

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/gorm"

	"around_backend/internal/feature/cards/domain"
	"around_backend/internal/feature/cards/domain/entity"
	useradapters "around_backend/internal/feature/users/adapters"
)

// CardModel is the relational row for a card.
type CardModel struct {
	ID        string                 `gorm:"primaryKey;size:24"`
	Name      string                 `gorm:"size:30;not null"`
	Link      string                 `gorm:"size:2083;not null"`
	OwnerID   string                 `gorm:"size:24;not null;index"`
	Owner     useradapters.UserModel `gorm:"foreignKey:OwnerID;references:ID"`
	Likes     []CardLikeModel        `gorm:"foreignKey:CardID;references:ID"`
	CreatedAt time.Time              `gorm:"index"`
}

// TableName pins the table name.
func (CardModel) TableName() string { return "cards" }

// BeforeCreate assigns an ObjectID-style hex id.
func (m *CardModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = bson.NewObjectID().Hex()
	}
	return nil
}

// CardLikeModel is one like. The composite key keeps each user's like unique per card.
type CardLikeModel struct {
	CardID    string `gorm:"primaryKey;size:24"`
	UserID    string `gorm:"primaryKey;size:24"`
	CreatedAt time.Time
}

// TableName pins the table name.
func (CardLikeModel) TableName() string { return "card_likes" }

// ToEntity converts the row and its preloaded associations to a domain card.
func (m *CardModel) ToEntity() entity.Card {
	likes := make([]string, 0, len(m.Likes))
	for _, l := range m.Likes {
		likes = append(likes, l.UserID)
	}
	owner := m.Owner.ToEntity()
	owner.Password = ""
	if owner.ID == "" {
		owner.ID = m.OwnerID
	}
	return entity.Card{
		ID:        m.ID,
		Name:      m.Name,
		Link:      m.Link,
		Owner:     owner,
		Likes:     likes,
		CreatedAt: m.CreatedAt,
	}
}

func checkID(id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidCardID
	}
	return nil
}
