package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

func tomato() model.Product {
	return model.Product{ID: "5", Name: "Tomato", Price: 60, Unit: "kg", Category: model.CategoryVegetables}
}

func strawberry() model.Product {
	return model.Product{ID: "1", Name: "Strawberry", Price: 170, Unit: "kg", Category: model.CategoryFruits}
}

// 合計は price × qty の和（60×2 + 170×1 = 290）
func TestCartTotal_ExampleSequence(t *testing.T) {
	s := InitialState()
	s = Reduce(s, AddToCart{Product: tomato()})
	s = Reduce(s, AddToCart{Product: tomato()})
	s = Reduce(s, AddToCart{Product: strawberry()})

	require.Len(t, s.Cart, 2)
	assert.Equal(t, 2, s.Cart[0].Quantity)
	assert.Equal(t, 1, s.Cart[1].Quantity)
	assert.Equal(t, float64(290), CartTotal(s))
	assert.Equal(t, 3, CartCount(s))
}

func TestAddToCart_SameProductMergesQuantity(t *testing.T) {
	s := Reduce(InitialState(), AddToCart{Product: tomato()})
	s = Reduce(s, AddToCart{Product: tomato()})

	require.Len(t, s.Cart, 1)
	assert.Equal(t, 2, s.Cart[0].Quantity)
}

func TestUpdateCartQuantity_ZeroOrNegativeRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -3} {
		s := Reduce(InitialState(), AddToCart{Product: tomato()})
		s = Reduce(s, AddToCart{Product: strawberry()})

		s = Reduce(s, UpdateCartQuantity{ProductID: "5", Quantity: qty})

		require.Len(t, s.Cart, 1)
		assert.Equal(t, "1", s.Cart[0].Product.ID)
	}
}

func TestUpdateCartQuantity_SetsQuantity(t *testing.T) {
	s := Reduce(InitialState(), AddToCart{Product: tomato()})
	s = Reduce(s, UpdateCartQuantity{ProductID: "5", Quantity: 4})

	assert.Equal(t, 4, s.Cart[0].Quantity)
	assert.Equal(t, float64(240), CartTotal(s))
}

// どんな操作列でも合計 = Σ price × qty、数量は常に1以上
func TestCartTotal_InvariantOverActionSequence(t *testing.T) {
	actions := []Action{
		AddToCart{Product: tomato()},
		AddToCart{Product: strawberry()},
		AddToCart{Product: tomato()},
		UpdateCartQuantity{ProductID: "1", Quantity: 3},
		RemoveFromCart{ProductID: "5"},
		AddToCart{Product: tomato()},
		UpdateCartQuantity{ProductID: "1", Quantity: 1},
		UpdateCartQuantity{ProductID: "1", Quantity: 0},
		AddToCart{Product: strawberry()},
	}

	s := InitialState()
	for _, a := range actions {
		s = Reduce(s, a)

		var want float64
		for _, it := range s.Cart {
			assert.GreaterOrEqual(t, it.Quantity, 1)
			want += it.Product.Price * float64(it.Quantity)
		}
		assert.Equal(t, want, CartTotal(s))
	}
	assert.Equal(t, float64(230), CartTotal(s))
}

func TestReduce_UnknownActionReturnsSamePointer(t *testing.T) {
	s := InitialState()
	got := Reduce(s, Unknown{Name: "SOMETHING_ELSE"})
	assert.Same(t, s, got)
}

func TestReduce_DoesNotMutatePreviousState(t *testing.T) {
	prev := Reduce(InitialState(), AddToCart{Product: tomato()})
	snapshot := *prev
	snapshot.Cart = append([]model.CartItem(nil), prev.Cart...)

	next := Reduce(prev, AddToCart{Product: tomato()})
	_ = Reduce(next, UpdateCartQuantity{ProductID: "5", Quantity: 0})

	assert.NotSame(t, prev, next)
	if diff := cmp.Diff(snapshot.Cart, prev.Cart); diff != "" {
		t.Fatalf("previous cart mutated (-want +got):\n%s", diff)
	}
}

func TestAddOrder_AppendsAndClearsCart(t *testing.T) {
	s := Reduce(InitialState(), AddToCart{Product: tomato()})
	s = Reduce(s, AddOrder{Order: model.Order{ID: "o1", Total: 60}})

	assert.Empty(t, s.Cart)
	require.Len(t, s.Orders, 1)
	assert.Equal(t, "o1", s.Orders[0].ID)
}

func TestLogoutSequence_ClearsUserAndCart(t *testing.T) {
	s := Reduce(InitialState(), SetUser{User: &model.User{ID: "u1", Role: model.RoleConsumer}})
	s = Reduce(s, AddToCart{Product: tomato()})

	s = Reduce(s, SetUser{User: nil})
	s = Reduce(s, ClearCart{})

	assert.Nil(t, s.User)
	assert.Empty(t, s.Cart)
}

func TestProductsAndFarmers(t *testing.T) {
	s := Reduce(InitialState(), SetProducts{Products: []model.Product{tomato()}})
	s = Reduce(s, AddProduct{Product: strawberry()})
	updated := tomato()
	updated.Price = 65
	s = Reduce(s, UpdateProduct{Product: updated})

	require.Len(t, s.Products, 2)
	assert.Equal(t, float64(65), s.Products[0].Price)

	s = Reduce(s, SetFarmers{Farmers: []model.Farmer{{ID: "1"}, {ID: "2"}}})
	s = Reduce(s, SponsorFarmer{FarmerID: "2"})
	assert.False(t, s.Farmers[0].Sponsored)
	assert.True(t, s.Farmers[1].Sponsored)
}

func TestToggles(t *testing.T) {
	s := InitialState()
	assert.Equal(t, "en", s.CurrentLanguage)

	s = Reduce(s, ToggleDarkMode{})
	s = Reduce(s, ToggleChat{})
	s = Reduce(s, ToggleCheckout{})
	s = Reduce(s, SetLanguage{Language: "hi"})

	assert.True(t, s.IsDarkMode)
	assert.True(t, s.IsChatOpen)
	assert.True(t, s.ShowCheckout)
	assert.Equal(t, "hi", s.CurrentLanguage)

	s = Reduce(s, ToggleCheckout{})
	assert.False(t, s.ShowCheckout)
}

func TestNotifications_Expire(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s := Reduce(InitialState(), Notify{Notification: model.Notification{ID: "a", ExpiresAt: now.Add(3 * time.Second)}})
	s = Reduce(s, Notify{Notification: model.Notification{ID: "b", ExpiresAt: now.Add(5 * time.Second)}})

	assert.Len(t, ActiveNotifications(s, now.Add(4*time.Second)), 1)

	s = Reduce(s, ExpireNotifications{Now: now.Add(4 * time.Second)})
	require.Len(t, s.Notifications, 1)
	assert.Equal(t, "b", s.Notifications[0].ID)

	s = Reduce(s, DismissNotification{ID: "b"})
	assert.Empty(t, s.Notifications)
}

func TestNotifications_NoOpKeepsSamePointer(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	empty := InitialState()
	assert.Same(t, empty, Reduce(empty, ExpireNotifications{Now: now}))
	assert.Same(t, empty, Reduce(empty, DismissNotification{ID: "missing"}))

	s := Reduce(empty, Notify{Notification: model.Notification{ID: "a", ExpiresAt: now.Add(3 * time.Second)}})
	assert.Same(t, s, Reduce(s, ExpireNotifications{Now: now.Add(time.Second)}))
	assert.Same(t, s, Reduce(s, DismissNotification{ID: "b"}))
	assert.NotSame(t, s, Reduce(s, ExpireNotifications{Now: now.Add(3 * time.Second)}))
}

func TestDecodeClientAction(t *testing.T) {
	a, err := DecodeClientAction("SET_LANGUAGE", json.RawMessage(`{"language":"ta"}`))
	require.NoError(t, err)
	assert.Equal(t, SetLanguage{Language: "ta"}, a)

	a, err = DecodeClientAction("TOGGLE_CHAT", nil)
	require.NoError(t, err)
	assert.Equal(t, ToggleChat{}, a)

	_, err = DecodeClientAction("ADD_ORDER", json.RawMessage(`{}`))
	assert.True(t, errors.Is(err, ErrActionNotAllowed))

	_, err = DecodeClientAction("SET_LANGUAGE", nil)
	assert.Error(t, err)

	a, err = DecodeClientAction("NOPE", nil)
	require.NoError(t, err)
	assert.Equal(t, Unknown{Name: "NOPE"}, a)
}
