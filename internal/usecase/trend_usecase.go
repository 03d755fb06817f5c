package usecase

import (
	"strings"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
)

type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
)

const DefaultTimeRange = "7d"

type PieSlice struct {
	Name           string               `json:"name"`
	Value          float64              `json:"value"`
	Recommendation model.Recommendation `json:"recommendation"`
}

type TrendView struct {
	Crop      string              `json:"crop"`
	Chart     ChartType           `json:"chart"`
	TimeRange string              `json:"time_range"`
	Crops     []string            `json:"crops"`
	Trends    []model.MarketTrend `json:"trends"`
	// line は先頭作物の履歴
	Series []model.PricePoint `json:"series,omitempty"`
	// pie は絞り込みに関係なく全作物
	Pie []PieSlice `json:"pie,omitempty"`
}

type TrendUsecase struct{}

func NewTrendUsecase() *TrendUsecase {
	return &TrendUsecase{}
}

func (u *TrendUsecase) View(sess *session.Session, crop string, chart ChartType) TrendView {
	all := sess.Store.State().MarketTrends
	if crop == "" {
		crop = CategoryAll
	}
	switch chart {
	case ChartLine, ChartBar, ChartPie:
	default:
		chart = ChartLine
	}

	filtered := FilterTrends(all, crop)
	v := TrendView{
		Crop:      crop,
		Chart:     chart,
		TimeRange: DefaultTimeRange,
		Crops:     cropNames(all),
		Trends:    filtered,
	}
	switch chart {
	case ChartLine:
		v.Series = []model.PricePoint{}
		if len(filtered) > 0 {
			v.Series = filtered[0].HistoricalData
		}
	case ChartPie:
		v.Pie = PieData(all)
	}
	return v
}

// FilterTrends は作物名の完全一致（大小無視）。"all" は全件。
func FilterTrends(trends []model.MarketTrend, crop string) []model.MarketTrend {
	if crop == CategoryAll {
		return trends
	}
	out := make([]model.MarketTrend, 0, 1)
	for _, t := range trends {
		if strings.EqualFold(t.CropName, crop) {
			out = append(out, t)
		}
	}
	return out
}

func PieData(trends []model.MarketTrend) []PieSlice {
	out := make([]PieSlice, 0, len(trends))
	for _, t := range trends {
		out = append(out, PieSlice{Name: t.CropName, Value: t.CurrentPrice, Recommendation: t.Recommendation})
	}
	return out
}

func cropNames(trends []model.MarketTrend) []string {
	out := make([]string, 0, len(trends))
	for _, t := range trends {
		out = append(out, t.CropName)
	}
	return out
}
