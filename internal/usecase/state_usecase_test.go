package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-m-samarth-cs/kisan-connect/internal/assistant"
	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

func TestStateUsecase_Dispatch(t *testing.T) {
	u := NewStateUsecase(newTestNotifier())
	sess := newTestSession(t)

	snap, err := u.Dispatch(sess, "TOGGLE_DARK_MODE", nil)
	require.NoError(t, err)
	assert.True(t, snap.IsDarkMode)

	snap, err = u.Dispatch(sess, "SET_LANGUAGE", json.RawMessage(`{"language":"mr"}`))
	require.NoError(t, err)
	assert.Equal(t, "mr", snap.CurrentLanguage)

	// 未知のアクションは状態を変えない
	before := sess.Store.State()
	_, err = u.Dispatch(sess, "SOMETHING_ELSE", nil)
	require.NoError(t, err)
	assert.Same(t, before, sess.Store.State())

	// 読むだけでは状態を置き換えない
	u.Snapshot(sess)
	u.Notifications(sess)
	assert.Same(t, before, sess.Store.State())

	_, err = u.Dispatch(sess, "ADD_ORDER", json.RawMessage(`{}`))
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)

	_, err = u.Dispatch(sess, "SET_LANGUAGE", json.RawMessage(`{bad`))
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestStateUsecase_Dispatch_SetLanguageValidated(t *testing.T) {
	u := NewStateUsecase(newTestNotifier())
	sess := newTestSession(t)

	snap, err := u.Dispatch(sess, "SET_LANGUAGE", json.RawMessage(`{"language":"ta-IN"}`))
	require.NoError(t, err)
	assert.Equal(t, "ta", snap.CurrentLanguage)

	for _, lang := range []string{"fr", "", "not a language"} {
		_, err = u.Dispatch(sess, "SET_LANGUAGE", json.RawMessage(`{"language":"`+lang+`"}`))
		he, ok := AsHTTPError(err)
		require.True(t, ok, lang)
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}
	assert.Equal(t, "ta", sess.Store.State().CurrentLanguage)
}

func TestStateUsecase_Notifications_DropExpired(t *testing.T) {
	n := newTestNotifier()
	u := NewStateUsecase(n)
	sess := newTestSession(t)

	sess.Store.Dispatch(store.Notify{Notification: model.Notification{ID: "old", Message: "x", ExpiresAt: testNow.Add(-time.Second)}})
	live := n.Notify(sess.Store, model.NotifyInfo, "hello", ttlNormal)

	got := u.Notifications(sess)
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].ID)

	u.Dismiss(sess, live.ID)
	assert.Empty(t, u.Notifications(sess))
}

func TestStateUsecase_Snapshot(t *testing.T) {
	u := NewStateUsecase(newTestNotifier())
	sess := newTestSession(t)
	sess.Store.Dispatch(store.AddToCart{Product: sampleProducts()[0]})
	sess.Store.Dispatch(store.AddToCart{Product: sampleProducts()[0]})
	sess.Store.Dispatch(store.AddToCart{Product: sampleProducts()[1]})

	snap := u.Snapshot(sess)
	assert.Equal(t, 3, snap.CartCount)
	assert.Equal(t, 290.0, snap.CartTotal)
}

func TestChatUsecase_Send(t *testing.T) {
	u := NewChatUsecase()
	sess := newTestSession(t)

	v := u.Toggle(sess)
	assert.True(t, v.Open)
	require.Len(t, v.Messages, 1)

	reply, err := u.Send(context.Background(), sess, "What is the delivery time?")
	require.NoError(t, err)
	assert.False(t, reply.IsUser)
	assert.Equal(t, assistant.Respond("What is the delivery time?"), reply.Message)
	assert.Len(t, u.View(sess).Messages, 3)

	_, err = u.Send(context.Background(), sess, "   ")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}
