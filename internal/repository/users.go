package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"okravets/contacts-api/internal/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AvatarFetcher resolves a default avatar URL for a fresh account.
// Implementations are best-effort: a failure only means no avatar.
type AvatarFetcher interface {
	Fetch(ctx context.Context, email string) (string, error)
}

type UserRepo struct {
	db      *gorm.DB
	avatars AvatarFetcher
}

// NewUserRepo builds a user repository. avatars may be nil, in which
// case new users simply start without an avatar.
func NewUserRepo(db *gorm.DB, avatars AvatarFetcher) *UserRepo {
	return &UserRepo{db: db, avatars: avatars}
}

func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	var users []model.User

	err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Find(&users).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users, %w", err)
	}

	return users, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &user, nil
}

// Create stores a new unverified user. The password must already be
// hashed. The default avatar lookup is best-effort and never fails
// the creation.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, username string) (*model.User, error) {
	var found bool

	err := r.db.WithContext(ctx).
		Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&found).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if user is registered, %w", err)
	}

	if found {
		return nil, ErrDuplicateEmail
	}

	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	avatar := ""
	if r.avatars != nil {
		avatar, err = r.avatars.Fetch(ctx, email)
		if err != nil {
			zap.L().Warn("Default avatar lookup failed, leaving avatar empty",
				zap.Error(err), zap.String("email", email))
			avatar = ""
		}
	}

	user := model.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Username:     username,
		Avatar:       avatar,
		Created:      time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, id, username, roles string, created time.Time, verified bool) (*model.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = username
	user.Roles = roles
	user.Created = created
	user.Verified = verified

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user, %w", err)
	}

	return user, nil
}

// Remove deletes a user together with all contacts they own
func (r *UserRepo) Remove(ctx context.Context, id string) (*model.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(model.Contact{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(model.User{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user, %w", err)
	}

	return user, nil
}

// UpdateRefreshToken overwrites the single active refresh token.
// An empty token forces the user to log in again.
func (r *UserRepo) UpdateRefreshToken(ctx context.Context, user *model.User, token string) error {
	err := r.db.WithContext(ctx).
		Model(model.User{}).
		Where("id = ?", user.ID).
		Update("refresh_token", token).
		Error
	if err != nil {
		return fmt.Errorf("failed to update refresh token, %w", err)
	}

	user.RefreshToken = token
	return nil
}

// MarkVerified flips the one-way verification flag
func (r *UserRepo) MarkVerified(ctx context.Context, email string) error {
	err := r.db.WithContext(ctx).
		Model(model.User{}).
		Where("email = ?", email).
		Update("verified", true).
		Error
	if err != nil {
		return fmt.Errorf("failed to mark user verified, %w", err)
	}

	return nil
}

func (r *UserRepo) SetAvatar(ctx context.Context, user *model.User, url string) (*model.User, error) {
	err := r.db.WithContext(ctx).
		Model(model.User{}).
		Where("id = ?", user.ID).
		Update("avatar", url).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar, %w", err)
	}

	user.Avatar = url
	return user, nil
}
