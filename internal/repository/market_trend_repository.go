package repository

import (
	"context"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

type MarketTrendRepository interface {
	List(ctx context.Context) ([]model.MarketTrend, error)
	// 同じIDは上書き（seed用）
	Save(ctx context.Context, trends []model.MarketTrend) error
}

// 疎通確認
type HealthChecker interface {
	Ping(ctx context.Context) error
}
