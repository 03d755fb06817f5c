package usecase

import (
	"context"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
)

const (
	PageHome              = "home"
	PageFarmerDashboard   = "farmer-dashboard"
	PageConsumerDashboard = "consumer-dashboard"
	PageAdoptFarm         = "adopt-farm"
	PageNGOSupport        = "ngo-support"
	PageMarketTrends      = "market-trends"
	PageNews              = "news"
)

// ホームに出す人気商品の数
const popularProducts = 6

// PageView は1画面分の表示データ
type PageView struct {
	Page string `json:"page"`
	// 未ログインでダッシュボードを開いたときはホーム＋ログイン画面
	ShowAuth bool   `json:"show_auth,omitempty"`
	Denied   bool   `json:"access_denied,omitempty"`
	Message  string `json:"message,omitempty"`
	Data     any    `json:"data,omitempty"`
}

type HomeView struct {
	PopularProducts []model.Product     `json:"popular_products"`
	MarketTrends    []model.MarketTrend `json:"market_trends"`
}

type ConsumerView struct {
	Products ProductListOutput `json:"products"`
	Cart     CartView          `json:"cart"`
}

type FarmerView struct {
	Dashboard  FarmerDashboard        `json:"dashboard"`
	Prediction model.PricePrediction  `json:"price_prediction"`
	CropHealth model.CropHealthReport `json:"crop_health"`
}

// PageUsecase はページ名から画面を組み立てる
type PageUsecase struct {
	products  *ProductUsecase
	cart      *CartUsecase
	farmer    *FarmerUsecase
	directory *DirectoryUsecase
	trends    *TrendUsecase
}

// DI
func NewPageUsecase(products *ProductUsecase, cart *CartUsecase, farmer *FarmerUsecase, directory *DirectoryUsecase, trends *TrendUsecase) *PageUsecase {
	return &PageUsecase{products: products, cart: cart, farmer: farmer, directory: directory, trends: trends}
}

// Render は未知のページをホームとして扱う
func (u *PageUsecase) Render(ctx context.Context, sess *session.Session, page string) (PageView, error) {
	s := sess.Store.State()

	switch page {
	case PageFarmerDashboard, PageConsumerDashboard:
		if s.User == nil {
			v := u.home(sess)
			v.ShowAuth = true
			return v, nil
		}
	}

	switch page {
	case PageFarmerDashboard:
		if s.User.Role != model.RoleFarmer {
			return denied(page, "Only farmers can access the Farmer Dashboard."), nil
		}
		d, err := u.farmer.Dashboard(ctx, sess)
		if err != nil {
			return PageView{}, err
		}
		return PageView{Page: page, Data: FarmerView{
			Dashboard:  d,
			Prediction: u.farmer.PricePrediction(),
			CropHealth: u.farmer.CropHealth(),
		}}, nil
	case PageConsumerDashboard:
		if s.User.Role != model.RoleConsumer {
			return denied(page, "Only consumers can access the Consumer Dashboard."), nil
		}
		return PageView{Page: page, Data: ConsumerView{
			Products: u.products.List(sess, ProductFilter{}),
			Cart:     u.cart.View(sess),
		}}, nil
	case PageAdoptFarm:
		return PageView{Page: page, Data: u.directory.Farmers(sess)}, nil
	case PageNGOSupport:
		return PageView{Page: page, Data: u.directory.NGOs(sess, model.AllIndia)}, nil
	case PageMarketTrends:
		return PageView{Page: page, Data: u.trends.View(sess, CategoryAll, ChartLine)}, nil
	case PageNews:
		return PageView{Page: page, Data: u.directory.News(sess, CategoryAll, "")}, nil
	default:
		return u.home(sess), nil
	}
}

func (u *PageUsecase) home(sess *session.Session) PageView {
	s := sess.Store.State()
	popular := s.Products
	if len(popular) > popularProducts {
		popular = popular[:popularProducts]
	}
	return PageView{Page: PageHome, Data: HomeView{PopularProducts: popular, MarketTrends: s.MarketTrends}}
}

func denied(page string, msg string) PageView {
	return PageView{Page: page, Denied: true, Message: msg}
}
