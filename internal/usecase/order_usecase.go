package usecase

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// 送料無料の下限（これを超えると0）
const (
	FreeDeliveryOver = 500.0
	DeliveryFee      = 50.0
)

// CheckoutUsecase はカート -> 配送先 -> 支払いの3段階で注文を作る
type CheckoutUsecase struct {
	gw        Gateway
	publisher OrderPublisher
	notify    *Notifier
	log       *zap.Logger
}

// DI
func NewCheckoutUsecase(gw Gateway, publisher OrderPublisher, notify *Notifier, log *zap.Logger) *CheckoutUsecase {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &CheckoutUsecase{gw: gw, publisher: publisher, notify: notify, log: log}
}

type CheckoutView struct {
	Open            bool                 `json:"open"`
	Step            session.CheckoutStep `json:"step"`
	Items           []model.CartItem     `json:"items"`
	Subtotal        float64              `json:"subtotal"`
	DeliveryFee     float64              `json:"delivery_fee"`
	Total           float64              `json:"total"`
	DeliveryAddress string               `json:"delivery_address"`
}

type PaymentInput struct {
	CardNumber     string
	ExpiryDate     string
	CVV            string
	CardholderName string
}

// DeliveryFeeFor は小計から送料を決める
func DeliveryFeeFor(subtotal float64) float64 {
	if subtotal > FreeDeliveryOver {
		return 0
	}
	return DeliveryFee
}

// MaskCard は下4桁だけ残す
func MaskCard(number string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "**** **** **** " + digits
}

func (u *CheckoutUsecase) View(sess *session.Session) CheckoutView {
	s := sess.Store.State()
	d := sess.Checkout()
	sub := store.CartTotal(s)
	fee := DeliveryFeeFor(sub)
	return CheckoutView{
		Open:            s.ShowCheckout,
		Step:            d.Step,
		Items:           s.Cart,
		Subtotal:        sub,
		DeliveryFee:     fee,
		Total:           sub + fee,
		DeliveryAddress: d.DeliveryAddress,
	}
}

// Toggle はチェックアウト画面の開閉（開くたびにステップ1から）
func (u *CheckoutUsecase) Toggle(sess *session.Session) CheckoutView {
	sess.Store.Dispatch(store.ToggleCheckout{})
	sess.ResetCheckout()
	return u.View(sess)
}

// Proceed はカート確認から配送先入力へ
func (u *CheckoutUsecase) Proceed(sess *session.Session) (CheckoutView, error) {
	if len(sess.Store.State().Cart) == 0 {
		return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	d := sess.Checkout()
	d.Step = session.StepDelivery
	sess.SetCheckout(d)
	return u.View(sess), nil
}

// SetDelivery は配送先を保存して支払いへ
func (u *CheckoutUsecase) SetDelivery(sess *session.Session, address string) (CheckoutView, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "delivery address is required")
	}
	if sess.Checkout().Step < session.StepDelivery {
		return CheckoutView{}, NewHTTPError(http.StatusConflict, "checkout step out of order")
	}
	sess.SetCheckout(session.CheckoutDraft{Step: session.StepPayment, DeliveryAddress: address})
	return u.View(sess), nil
}

// Back は1つ前のステップへ
func (u *CheckoutUsecase) Back(sess *session.Session) CheckoutView {
	d := sess.Checkout()
	if d.Step > session.StepCart {
		d.Step--
	}
	sess.SetCheckout(d)
	return u.View(sess)
}

// PlaceOrder は注文を作成する。再送すると重複注文になる。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, sess *session.Session, in PaymentInput) (model.Order, error) {
	s := sess.Store.State()
	if s.User == nil {
		u.notify.Notify(sess.Store, model.NotifyWarning, MsgLoginToOrder, ttlNormal)
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, MsgLoginToOrder)
	}
	if len(s.Cart) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	d := sess.Checkout()
	if d.Step != session.StepPayment || d.DeliveryAddress == "" {
		return model.Order{}, NewHTTPError(http.StatusConflict, "checkout step out of order")
	}
	if strings.TrimSpace(in.CardNumber) == "" || strings.TrimSpace(in.ExpiryDate) == "" ||
		strings.TrimSpace(in.CVV) == "" || strings.TrimSpace(in.CardholderName) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "payment details are required")
	}

	sub := store.CartTotal(s)
	order := model.Order{
		UserID:          s.User.ID,
		FarmerID:        s.Cart[0].Product.FarmerID,
		Items:           model.SnapshotCart(s.Cart),
		Total:           sub + DeliveryFeeFor(sub),
		Status:          model.OrderStatusPending,
		DeliveryAddress: d.DeliveryAddress,
		PaymentMethod:   MaskCard(in.CardNumber),
	}

	created, err := u.gw.CreateOrder(ctx, order)
	if err != nil {
		u.log.Warn("order failed", zap.String("user_id", order.UserID), zap.Error(err))
		u.notify.Notify(sess.Store, model.NotifyError, MsgOrderFailed, ttlNormal)
		return model.Order{}, toHTTPError(err, MsgOrderFailed)
	}

	// ADD_ORDER でカートも空になる
	sess.Store.Dispatch(store.AddOrder{Order: created})
	if sess.Store.State().ShowCheckout {
		sess.Store.Dispatch(store.ToggleCheckout{})
	}
	sess.ResetCheckout()
	u.publisher.PublishOrder(created)
	u.notify.Notify(sess.Store, model.NotifySuccess, MsgOrderConfirmed, ttlLong)
	return created, nil
}

// Orders は消費者自身の注文履歴
func (u *CheckoutUsecase) Orders(ctx context.Context, sess *session.Session) ([]model.Order, error) {
	user := sess.Store.State().User
	if user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orders, err := u.gw.ListConsumerOrders(ctx, user.ID)
	if err != nil {
		return nil, toHTTPError(err, "failed to load orders")
	}
	return orders, nil
}
