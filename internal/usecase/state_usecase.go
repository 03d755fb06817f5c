package usecase

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/i18n"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// Snapshot はクライアントに返す状態（期限切れ通知は除く）
type Snapshot struct {
	*store.State
	CartCount int     `json:"cart_count"`
	CartTotal float64 `json:"cart_total"`
}

type StateUsecase struct {
	notify *Notifier
}

// DI
func NewStateUsecase(notify *Notifier) *StateUsecase {
	return &StateUsecase{notify: notify}
}

func (u *StateUsecase) Snapshot(sess *session.Session) Snapshot {
	// 期限切れの掃除も兼ねる
	u.notify.Active(sess.Store)
	s := sess.Store.State()
	return Snapshot{State: s, CartCount: store.CartCount(s), CartTotal: store.CartTotal(s)}
}

// Dispatch はクライアントから許可された表示系アクションだけ受け付ける
func (u *StateUsecase) Dispatch(sess *session.Session, typ string, payload json.RawMessage) (Snapshot, error) {
	a, err := store.DecodeClientAction(typ, payload)
	if err != nil {
		if errors.Is(err, store.ErrActionNotAllowed) {
			return Snapshot{}, NewHTTPError(http.StatusForbidden, "action not allowed")
		}
		return Snapshot{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	// 言語は PUT /preferences/language と同じ判定
	if sl, ok := a.(store.SetLanguage); ok {
		if !i18n.IsSupported(sl.Language) {
			return Snapshot{}, NewHTTPError(http.StatusBadRequest, "unsupported language")
		}
		a = store.SetLanguage{Language: i18n.BaseLanguage(sl.Language)}
	}
	sess.Store.Dispatch(a)
	return u.Snapshot(sess), nil
}

func (u *StateUsecase) Notifications(sess *session.Session) []model.Notification {
	return u.notify.Active(sess.Store)
}

func (u *StateUsecase) Dismiss(sess *session.Session, id string) {
	u.notify.Dismiss(sess.Store, id)
}
