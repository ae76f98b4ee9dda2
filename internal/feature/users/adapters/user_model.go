// Package adapters provides the store implementations of the user repositories.
package adapters

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/gorm"

	"around_backend/internal/feature/users/domain"
	"around_backend/internal/feature/users/domain/entity"
)

// UserModel is the relational row for a user.
type UserModel struct {
	ID        string `gorm:"primaryKey;size:24"`
	Name      string `gorm:"size:30;not null"`
	About     string `gorm:"size:30;not null"`
	Avatar    string `gorm:"size:2083;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name.
func (UserModel) TableName() string { return "users" }

// BeforeCreate assigns an ObjectID-style hex id so ids look the same on every store.
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = bson.NewObjectID().Hex()
	}
	return nil
}

// ToEntity converts the row to a domain user.
func (m *UserModel) ToEntity() entity.User {
	return entity.User{
		ID:       m.ID,
		Name:     m.Name,
		About:    m.About,
		Avatar:   m.Avatar,
		Email:    m.Email,
		Password: m.Password,
	}
}

func fromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:       u.ID,
		Name:     u.Name,
		About:    u.About,
		Avatar:   u.Avatar,
		Email:    u.Email,
		Password: u.Password,
	}
}

// checkID rejects ids that cannot have been issued by any store.
func checkID(id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidUserID
	}
	return nil
}
