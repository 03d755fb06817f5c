package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/i-m-samarth-cs/kisan-connect/internal/assistant"
	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

type ChatUsecase struct{}

func NewChatUsecase() *ChatUsecase {
	return &ChatUsecase{}
}

type ChatView struct {
	Open     bool                `json:"open"`
	Typing   bool                `json:"typing"`
	Messages []model.ChatMessage `json:"messages"`
}

func (u *ChatUsecase) View(sess *session.Session) ChatView {
	return ChatView{
		Open:     sess.Store.State().IsChatOpen,
		Typing:   sess.Assistant.Typing(),
		Messages: sess.Assistant.History(),
	}
}

func (u *ChatUsecase) Toggle(sess *session.Session) ChatView {
	sess.Store.Dispatch(store.ToggleChat{})
	return u.View(sess)
}

// Send は返信が来るまで待つ（入力中の遅延込み）
func (u *ChatUsecase) Send(ctx context.Context, sess *session.Session, text string) (model.ChatMessage, error) {
	lang := sess.Store.State().CurrentLanguage
	reply, err := sess.Assistant.Send(ctx, text, lang)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyMessage) {
			return model.ChatMessage{}, NewHTTPError(http.StatusBadRequest, "message is required")
		}
		return model.ChatMessage{}, err
	}
	return reply, nil
}
