package usecase

import (
	"net/http"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

type CartUsecase struct {
	notify *Notifier
}

// DI
func NewCartUsecase(notify *Notifier) *CartUsecase {
	return &CartUsecase{notify: notify}
}

type CartView struct {
	Items []model.CartItem `json:"items"`
	Count int              `json:"count"`
	Total float64          `json:"total"`
}

func (u *CartUsecase) View(sess *session.Session) CartView {
	s := sess.Store.State()
	return CartView{
		Items: s.Cart,
		Count: store.CartCount(s),
		Total: store.CartTotal(s),
	}
}

// AddToCart はログイン済みの消費者だけがカートに入れられる
func (u *CartUsecase) AddToCart(sess *session.Session, productID string) (CartView, error) {
	p, err := u.purchasable(sess, productID, MsgLoginToAddToCart, MsgOnlyConsumersCart)
	if err != nil {
		return CartView{}, err
	}
	sess.Store.Dispatch(store.AddToCart{Product: p})
	u.notify.Notify(sess.Store, model.NotifySuccess, p.Name+" added to cart!", ttlShort)
	return u.View(sess), nil
}

// BuyNow はカートに入れてチェックアウトを開く
func (u *CartUsecase) BuyNow(sess *session.Session, productID string) (CartView, error) {
	p, err := u.purchasable(sess, productID, MsgLoginToPurchase, MsgOnlyConsumersBuy)
	if err != nil {
		return CartView{}, err
	}
	sess.Store.Dispatch(store.AddToCart{Product: p})
	if !sess.Store.State().ShowCheckout {
		sess.Store.Dispatch(store.ToggleCheckout{})
	}
	sess.ResetCheckout()
	return u.View(sess), nil
}

// UpdateQuantity は0以下で行を削除
func (u *CartUsecase) UpdateQuantity(sess *session.Session, productID string, qty int) CartView {
	sess.Store.Dispatch(store.UpdateCartQuantity{ProductID: productID, Quantity: qty})
	return u.View(sess)
}

func (u *CartUsecase) Remove(sess *session.Session, productID string) CartView {
	sess.Store.Dispatch(store.RemoveFromCart{ProductID: productID})
	return u.View(sess)
}

func (u *CartUsecase) Clear(sess *session.Session) CartView {
	sess.Store.Dispatch(store.ClearCart{})
	return u.View(sess)
}

func (u *CartUsecase) purchasable(sess *session.Session, productID string, loginMsg string, roleMsg string) (model.Product, error) {
	s := sess.Store.State()
	if s.User == nil {
		u.notify.Notify(sess.Store, model.NotifyWarning, loginMsg, ttlNormal)
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, loginMsg)
	}
	if s.User.Role != model.RoleConsumer {
		u.notify.Notify(sess.Store, model.NotifyError, roleMsg, ttlNormal)
		return model.Product{}, NewHTTPError(http.StatusForbidden, roleMsg)
	}
	p, ok := store.FindProduct(s, productID)
	if !ok {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return p, nil
}
