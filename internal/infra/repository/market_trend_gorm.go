package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

type MarketTrendGormRepository struct {
	db *gorm.DB
}

// DI
func NewMarketTrendGormRepository(db *gorm.DB) *MarketTrendGormRepository {
	return &MarketTrendGormRepository{db: db}
}

func (r *MarketTrendGormRepository) List(ctx context.Context) ([]model.MarketTrend, error) {
	var trends []model.MarketTrend
	if err := r.db.WithContext(ctx).Order("crop_name asc").Find(&trends).Error; err != nil {
		return []model.MarketTrend{}, err
	}
	return trends, nil
}

func (r *MarketTrendGormRepository) Save(ctx context.Context, trends []model.MarketTrend) error {
	if len(trends) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&trends).Error
}

// Ping はDB疎通確認（HealthChecker）
func (r *MarketTrendGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
