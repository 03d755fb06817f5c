package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
	"github.com/i-m-samarth-cs/kisan-connect/internal/seed"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// 保存済みの言語設定
type LanguagePreference interface {
	Language() string
}

type BootstrapUsecase struct {
	gw    Gateway
	prefs LanguagePreference
	log   *zap.Logger
	demo  func() (seed.Data, error)
}

// DI
func NewBootstrapUsecase(gw Gateway, prefs LanguagePreference, log *zap.Logger) *BootstrapUsecase {
	return &BootstrapUsecase{gw: gw, prefs: prefs, log: log, demo: seed.Load}
}

// Boot はセッション初回だけ初期データを読み込む。
// バックエンドに繋がれば商品と相場を並行取得、だめならデモデータ。
// 農家・NGO・ニュースは常にデモデータ。
func (u *BootstrapUsecase) Boot(ctx context.Context, sess *session.Session) error {
	if !sess.MarkBooted() {
		return nil
	}

	demo, err := u.demo()
	if err != nil {
		return err
	}

	products, trends := demo.Products, demo.MarketTrends
	if u.gw.TestConnection(ctx) {
		p, t, err := u.loadRemote(ctx)
		if err != nil {
			u.log.Warn("initial load failed, using demo data", zap.Error(err))
		} else {
			products, trends = p, t
		}
	} else {
		u.log.Debug("backend not connected, using demo data")
	}

	st := sess.Store
	st.Dispatch(store.SetProducts{Products: products})
	st.Dispatch(store.SetMarketTrends{Trends: trends})
	st.Dispatch(store.SetFarmers{Farmers: demo.Farmers})
	st.Dispatch(store.SetNGOs{NGOs: demo.NGOs})
	st.Dispatch(store.SetNewsArticles{Articles: demo.NewsArticles})

	if u.prefs != nil {
		if lang := u.prefs.Language(); lang != st.State().CurrentLanguage {
			st.Dispatch(store.SetLanguage{Language: lang})
		}
	}

	// セッション復元
	if user := u.gw.CurrentUser(ctx, sess.Token()); user != nil {
		st.Dispatch(store.SetUser{User: user})
		u.log.Info("user session restored", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	}
	return nil
}

func (u *BootstrapUsecase) loadRemote(ctx context.Context) ([]model.Product, []model.MarketTrend, error) {
	var (
		products []model.Product
		trends   []model.MarketTrend
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = u.gw.ListProducts(gctx, repo.ProductListQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		trends, err = u.gw.ListMarketTrends(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, trends, nil
}
