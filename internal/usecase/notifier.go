package usecase

import (
	"time"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/i18n"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// Notifier は一定時間で消える通知を store に積む。
// 文言はセッションの言語で翻訳する。
type Notifier struct {
	clock Clock
	idGen IDGenerator
	tr    *i18n.Translator
}

// DI
func NewNotifier(clock Clock, idGen IDGenerator, tr *i18n.Translator) *Notifier {
	return &Notifier{clock: clock, idGen: idGen, tr: tr}
}

func (n *Notifier) Notify(st *store.Store, kind model.NotificationKind, msg string, ttl time.Duration) model.Notification {
	lang := st.State().CurrentLanguage
	note := model.Notification{
		ID:        n.idGen.NewID(),
		Kind:      kind,
		Message:   n.tr.Translate(lang, msg),
		ExpiresAt: n.clock.Now().Add(ttl),
	}
	st.Dispatch(store.Notify{Notification: note})
	return note
}

// Active は期限切れを掃除して残りを返す
func (n *Notifier) Active(st *store.Store) []model.Notification {
	now := n.clock.Now()
	s := st.Dispatch(store.ExpireNotifications{Now: now})
	return store.ActiveNotifications(s, now)
}

// Dismiss は通知を手動で閉じる
func (n *Notifier) Dismiss(st *store.Store, id string) {
	st.Dispatch(store.DismissNotification{ID: id})
}
