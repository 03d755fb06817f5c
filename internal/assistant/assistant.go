package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

const DefaultDelay = time.Second

var ErrEmptyMessage = errors.New("message is empty")

// Assistant は1セッション分の会話履歴を持つ。履歴は追記のみ。
type Assistant struct {
	mu      sync.Mutex
	history []model.ChatMessage
	typing  bool

	delay time.Duration
	now   func() time.Time
	newID func() string
}

type Option func(*Assistant)

func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(a *Assistant) { a.newID = newID }
}

// DI
func New(delay time.Duration, opts ...Option) *Assistant {
	if delay < 0 {
		delay = 0
	}
	a := &Assistant{
		delay: delay,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(a)
	}
	a.history = []model.ChatMessage{a.message(Greeting, false, "en")}
	return a
}

// History は履歴のコピーを返す
func (a *Assistant) History() []model.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.ChatMessage, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Assistant) Typing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.typing
}

// Send はユーザー発言を追記し、遅延のあとボットの応答を追記して返す。
// ctx がキャンセルされた場合、ユーザー発言だけが残る。
func (a *Assistant) Send(ctx context.Context, text string, lang string) (model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}
	if lang == "" {
		lang = "en"
	}

	a.mu.Lock()
	a.history = append(a.history, a.message(text, true, lang))
	a.typing = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.typing = false
		a.mu.Unlock()
	}()

	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return model.ChatMessage{}, ctx.Err()
		case <-timer.C:
		}
	}

	reply := a.message(Respond(text), false, lang)

	a.mu.Lock()
	a.history = append(a.history, reply)
	a.mu.Unlock()

	return reply, nil
}

func (a *Assistant) message(text string, isUser bool, lang string) model.ChatMessage {
	return model.ChatMessage{
		ID:        a.newID(),
		Message:   text,
		IsUser:    isUser,
		Timestamp: a.now(),
		Language:  lang,
	}
}
