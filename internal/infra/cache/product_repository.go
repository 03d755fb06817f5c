package cache

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
)

// ProductStore は商品一覧キャッシュの保存先
type ProductStore interface {
	GetProducts(ctx context.Context) ([]model.Product, error)
	SetProducts(ctx context.Context, products []model.Product) error
	Invalidate(ctx context.Context) error
}

// CachedProductRepository は条件なしの一覧だけをキャッシュから読む。
// キャッシュの失敗はDBへのフォールバックで吸収する。
type CachedProductRepository struct {
	base  repo.ProductRepository
	store ProductStore
	log   *zap.Logger
}

// DI
func NewCachedProductRepository(base repo.ProductRepository, store ProductStore, log *zap.Logger) *CachedProductRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedProductRepository{base: base, store: store, log: log}
}

func (r *CachedProductRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	if !isUnfiltered(q) {
		return r.base.List(ctx, q)
	}

	products, err := r.store.GetProducts(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, ErrMiss) {
		r.log.Warn("product cache read failed, falling back to db", zap.Error(err))
	}

	products, err = r.base.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := r.store.SetProducts(ctx, products); err != nil {
		r.log.Warn("product cache write failed", zap.Error(err))
	}
	return products, nil
}

func (r *CachedProductRepository) ListByFarmer(ctx context.Context, farmerID string) ([]model.Product, error) {
	return r.base.ListByFarmer(ctx, farmerID)
}

// 作成したら一覧キャッシュを捨てる
func (r *CachedProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	created, err := r.base.Create(ctx, p)
	if err != nil {
		return model.Product{}, err
	}
	if err := r.store.Invalidate(ctx); err != nil {
		r.log.Warn("product cache invalidate failed", zap.Error(err))
	}
	return created, nil
}

func isUnfiltered(q repo.ProductListQuery) bool {
	return q.Q == "" && (q.Category == "" || q.Category == "all") && q.MinPrice == nil && q.MaxPrice == nil
}
