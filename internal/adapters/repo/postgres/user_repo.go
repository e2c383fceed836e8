package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/phenrril/envatex/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	name := strings.TrimSpace(username)
	if name == "" {
		return nil, errors.New("username vacío")
	}
	if err := r.db.WithContext(ctx).First(&u, "username = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Save(ctx context.Context, u *domain.User) error {
	u.Username = strings.TrimSpace(u.Username)
	return r.db.WithContext(ctx).Save(u).Error
}
