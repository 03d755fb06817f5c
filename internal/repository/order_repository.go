package repository

import (
	"context"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

// 注文は作成と一覧のみ（更新はしない）
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
}
