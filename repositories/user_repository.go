package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tarweej.app/configs"
	"tarweej.app/models"
)

// IUserRepository is the account lookup surface used by the auth service.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.User]
}

func NewUserRepository() IUserRepository {
	db := configs.GetDB()
	return &UserRepository{db: db, base: NewBaseRepository[models.User](db)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.base.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

var _ IUserRepository = (*UserRepository)(nil)
