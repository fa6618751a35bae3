package repo

import (
	"context"

	"github.com/Skotchmaster/smart_shopper/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrEmailTaken
	}
	return nil
}

func (r *GormRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser rewrites the profile fields. Email uniqueness is re-checked so
// an edit cannot steal another account's login key.
func (r *GormRepo) UpdateUser(ctx context.Context, id uint, firstName, lastName, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}

	var clash models.User
	err := r.DB.WithContext(ctx).Where("email = ? AND id <> ?", email, id).First(&clash).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !IsNotFound(err) {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	if err := r.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) AddRefresh(ctx context.Context, tokenHash, jti string, userID uint, expiresAt int64) error {
	row := models.RefreshToken{
		Token:     tokenHash,
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *GormRepo) RevokeRefresh(ctx context.Context, tokenHash string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", tokenHash).
		Update("revoked", true).Error
}
