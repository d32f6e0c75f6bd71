package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	clientDomain "lms-backend/internal/domain/client"
)

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *clientDomain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) Save(ctx context.Context, c *clientDomain.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientRepository) ListAll(ctx context.Context) ([]clientDomain.Client, error) {
	var out []clientDomain.Client
	res := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out)
	return out, res.Error
}

func (r *ClientRepository) GetByClientID(ctx context.Context, clientID string) (*clientDomain.Client, error) {
	var out clientDomain.Client
	res := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&out)
	return &out, res.Error
}

func (r *ClientRepository) FirstOwnedBy(ctx context.Context, userID string) (*clientDomain.Client, error) {
	var out clientDomain.Client
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		First(&out)
	return &out, res.Error
}

func (r *ClientRepository) Owns(ctx context.Context, userID, clientID string) (bool, error) {
	var out clientDomain.Client
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND user_id = ?", clientID, userID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
