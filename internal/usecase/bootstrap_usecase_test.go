package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/seed"
)

func TestBootstrap_Offline_UsesDemoData(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("TestConnection", mock.Anything).Return(false).Once()
	gw.On("CurrentUser", mock.Anything, "").Return(nil).Once()

	u := NewBootstrapUsecase(gw, &memPrefs{}, nopLogger())
	sess := newTestSession(t)

	require.NoError(t, u.Boot(context.Background(), sess))
	// 2回目は何もしない
	require.NoError(t, u.Boot(context.Background(), sess))

	demo := seed.MustLoad()
	s := sess.Store.State()
	assert.Len(t, s.Products, len(demo.Products))
	assert.Len(t, s.MarketTrends, len(demo.MarketTrends))
	assert.Len(t, s.Farmers, len(demo.Farmers))
	assert.Len(t, s.NGOs, len(demo.NGOs))
	assert.Len(t, s.NewsArticles, len(demo.NewsArticles))
	assert.Nil(t, s.User)

	gw.AssertExpectations(t)
	gw.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
}

func TestBootstrap_Connected_LoadsFromBackend(t *testing.T) {
	remote := sampleProducts()
	trends := []model.MarketTrend{{ID: "t1", CropName: "Tomato", CurrentPrice: 55}}
	user := &model.User{ID: "c1", Name: "Asha", Role: model.RoleConsumer}

	gw := new(GatewayMock)
	gw.On("TestConnection", mock.Anything).Return(true)
	gw.On("ListProducts", mock.Anything, mock.Anything).Return(remote, nil)
	gw.On("ListMarketTrends", mock.Anything).Return(trends, nil)
	gw.On("CurrentUser", mock.Anything, "tok").Return(user)

	u := NewBootstrapUsecase(gw, &memPrefs{lang: "hi"}, nopLogger())
	sess := newTestSession(t)
	sess.SetToken("tok")

	require.NoError(t, u.Boot(context.Background(), sess))

	s := sess.Store.State()
	assert.Equal(t, remote, s.Products)
	assert.Equal(t, trends, s.MarketTrends)
	assert.Equal(t, user, s.User)
	assert.Equal(t, "hi", s.CurrentLanguage)
	// 農家・NGOは常にデモデータ
	assert.NotEmpty(t, s.Farmers)
	assert.NotEmpty(t, s.NGOs)
	gw.AssertExpectations(t)
}

func TestBootstrap_LoadFailure_FallsBackToDemo(t *testing.T) {
	gw := new(GatewayMock)
	gw.On("TestConnection", mock.Anything).Return(true)
	gw.On("ListProducts", mock.Anything, mock.Anything).Return(sampleProducts(), nil)
	gw.On("ListMarketTrends", mock.Anything).Return(nil, errors.New("timeout"))
	gw.On("CurrentUser", mock.Anything, "").Return(nil)

	u := NewBootstrapUsecase(gw, nil, nopLogger())
	sess := newTestSession(t)

	require.NoError(t, u.Boot(context.Background(), sess))

	demo := seed.MustLoad()
	s := sess.Store.State()
	assert.Len(t, s.Products, len(demo.Products))
	assert.Equal(t, demo.Products[0].ID, s.Products[0].ID)
	assert.Len(t, s.MarketTrends, len(demo.MarketTrends))
}

func TestBootstrap_SeedError(t *testing.T) {
	gw := new(GatewayMock)
	u := NewBootstrapUsecase(gw, nil, nopLogger())
	u.demo = func() (seed.Data, error) { return seed.Data{}, errors.New("broken") }

	err := u.Boot(context.Background(), newTestSession(t))
	assert.Error(t, err)
	gw.AssertNotCalled(t, "TestConnection", mock.Anything)
}
