package usecase

import (
	"strings"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
)

const (
	CategoryAll     = "all"
	DefaultMinPrice = 0.0
	DefaultMaxPrice = 1000.0
)

type ProductUsecase struct{}

func NewProductUsecase() *ProductUsecase {
	return &ProductUsecase{}
}

// 消費者ダッシュボードの絞り込み条件
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

type ProductListOutput struct {
	Categories []string        `json:"categories"`
	Items      []model.Product `json:"items"`
	Total      int             `json:"total"`
}

// List はセッションに読み込まれた商品を絞り込む（名前の部分一致は大小無視）
func (u *ProductUsecase) List(sess *session.Session, f ProductFilter) ProductListOutput {
	items := FilterProducts(sess.Store.State().Products, f)
	return ProductListOutput{
		Categories: append([]string{CategoryAll}, model.Categories...),
		Items:      items,
		Total:      len(items),
	}
}

// Get は1件取得
func (u *ProductUsecase) Get(sess *session.Session, id string) (model.Product, bool) {
	for _, p := range sess.Store.State().Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func FilterProducts(products []model.Product, f ProductFilter) []model.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.TrimSpace(f.Category)
	min, max := DefaultMinPrice, DefaultMaxPrice
	if f.MinPrice != nil {
		min = *f.MinPrice
	}
	if f.MaxPrice != nil {
		max = *f.MaxPrice
	}

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if p.Price < min || p.Price > max {
			continue
		}
		out = append(out, p)
	}
	return out
}
