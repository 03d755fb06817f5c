package session

import (
	"sync"
	"time"

	"github.com/i-m-samarth-cs/kisan-connect/internal/assistant"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// チェックアウトの段階（カート確認 -> 配送先 -> 支払い）
type CheckoutStep int

const (
	StepCart     CheckoutStep = 1
	StepDelivery CheckoutStep = 2
	StepPayment  CheckoutStep = 3
)

// CheckoutDraft はチェックアウト中の入力（注文確定まで store には入れない）
type CheckoutDraft struct {
	Step            CheckoutStep `json:"step"`
	DeliveryAddress string       `json:"delivery_address"`
}

// Session はクライアント1つ分（元のブラウザタブ1つ分）の状態。
// Store への書き込みは Dispatch のみ。
type Session struct {
	ID        string
	Store     *store.Store
	Assistant *assistant.Assistant

	mu       sync.Mutex
	token    string
	checkout CheckoutDraft
	lastSeen time.Time
	booted   bool
}

func newSession(id string, chatDelay time.Duration, now time.Time) *Session {
	return &Session{
		ID:        id,
		Store:     store.New(store.InitialState()),
		Assistant: assistant.New(chatDelay),
		checkout:  CheckoutDraft{Step: StepCart},
		lastSeen:  now,
	}
}

// Token はサインイン中のセッショントークン（未ログインは空）
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) Checkout() CheckoutDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout
}

func (s *Session) SetCheckout(d CheckoutDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout = d
}

// ResetCheckout はステップ1に戻す
func (s *Session) ResetCheckout() {
	s.SetCheckout(CheckoutDraft{Step: StepCart})
}

// MarkBooted は初回だけ true を返す（ブートストラップの多重実行防止）
func (s *Session) MarkBooted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.booted {
		return false
	}
	s.booted = true
	return true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
