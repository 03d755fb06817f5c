package seed

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

//go:embed demo.yaml
var demoYAML []byte

// Data はバックエンド未設定時・取得失敗時に使うデモデータ
type Data struct {
	Products     []model.Product     `yaml:"products"`
	Farmers      []model.Farmer      `yaml:"farmers"`
	NGOs         []model.NGO         `yaml:"ngos"`
	MarketTrends []model.MarketTrend `yaml:"market_trends"`
	NewsArticles []model.NewsArticle `yaml:"news_articles"`
}

var (
	once   sync.Once
	cached Data
	errDec error
)

// Load は埋め込みYAMLを一度だけ読み、呼び出しごとにコピーを返す。
func Load() (Data, error) {
	once.Do(func() {
		errDec = yaml.Unmarshal(demoYAML, &cached)
		if errDec != nil {
			errDec = fmt.Errorf("seed: %w", errDec)
			return
		}
		now := time.Now().UTC()
		for i := range cached.MarketTrends {
			cached.MarketTrends[i].Date = now
		}
	})
	if errDec != nil {
		return Data{}, errDec
	}
	return cached.clone(), nil
}

// MustLoad は Load の panic 版
func MustLoad() Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

func (d Data) clone() Data {
	return Data{
		Products:     append([]model.Product(nil), d.Products...),
		Farmers:      append([]model.Farmer(nil), d.Farmers...),
		NGOs:         append([]model.NGO(nil), d.NGOs...),
		MarketTrends: append([]model.MarketTrend(nil), d.MarketTrends...),
		NewsArticles: append([]model.NewsArticle(nil), d.NewsArticles...),
	}
}
