package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	authusecase "around_backend/internal/feature/auth/usecase"
	"around_backend/internal/feature/users/domain"
	"around_backend/internal/feature/users/domain/entity"
	"around_backend/internal/feature/users/usecase"
	"around_backend/internal/platform/db"
)

// PublicColumns excludes the password hash from every read except credential lookup.
var PublicColumns = []string{"id", "name", "about", "avatar", "email"}

// userGorm implements the user repositories on gorm (postgres or sqlite).
type userGorm struct {
	db *gorm.DB
}

var (
	_ usecase.UserRepository     = (*userGorm)(nil)
	_ authusecase.UserRepository = (*userGorm)(nil)
)

// NewUserGorm creates a new userGorm on the given connection.
func NewUserGorm(gdb *gorm.DB) *userGorm {
	return &userGorm{db: gdb}
}

// Create inserts the user and sets its id.
// It returns domain.ErrEmailAlreadyExists when the email is taken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	m := fromEntity(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = m.ID
	return nil
}

// FindByEmail returns the user including the password hash.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u := m.ToEntity()
	return &u, nil
}

// FindByID returns the user without the password hash.
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var m UserModel
	if err := r.db.WithContext(ctx).Select(PublicColumns).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u := m.ToEntity()
	return &u, nil
}

// List returns all users in creation order.
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Select(PublicColumns).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToEntity())
	}
	return out, nil
}

// UpdateProfile sets name and about and returns the updated user.
func (r *userGorm) UpdateProfile(ctx context.Context, id, name, about string) (*entity.User, error) {
	return r.update(ctx, id, map[string]any{"name": name, "about": about})
}

// UpdateAvatar sets the avatar and returns the updated user.
func (r *userGorm) UpdateAvatar(ctx context.Context, id, avatar string) (*entity.User, error) {
	return r.update(ctx, id, map[string]any{"avatar": avatar})
}

func (r *userGorm) update(ctx context.Context, id string, fields map[string]any) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}
