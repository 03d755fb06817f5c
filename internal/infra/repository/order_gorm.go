package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, o model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 農家宛ての注文（新しい順）
func (r *OrderGormRepository) ListByFarmer(ctx context.Context, farmerID string) ([]model.Order, error) {
	return r.list(ctx, "farmer_id = ?", farmerID)
}

// 消費者の注文履歴（新しい順）
func (r *OrderGormRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *OrderGormRepository) list(ctx context.Context, where string, arg string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where(where, arg).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}
