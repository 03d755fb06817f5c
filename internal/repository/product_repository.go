package repository

import (
	"context"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Q        string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// 新しい順
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
}
