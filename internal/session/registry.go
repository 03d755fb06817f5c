package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry はセッションIDごとの Session を保持する。
// ttl より長く使われなかったセッションは Sweep で消える。
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	ttl       time.Duration
	chatDelay time.Duration
	max       int // 0 は無制限
	now       func() time.Time
}

// DI
func NewRegistry(ttl time.Duration, chatDelay time.Duration) *Registry {
	return &Registry{
		sessions:  map[string]*Session{},
		ttl:       ttl,
		chatDelay: chatDelay,
		now:       time.Now,
	}
}

// WithLimit は保持するセッション数の上限を設定する。
// 上限に達したら期限切れを消し、それでも足りなければ最も長く放置されたものを消す。
func (r *Registry) WithLimit(max int) *Registry {
	r.mu.Lock()
	r.max = max
	r.mu.Unlock()
	return r
}

// Get は既存セッションを返し、最終アクセスを更新する
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	s.touch(r.now())
	return s, true
}

// GetOrCreate は id が無効なら新しいセッションを作る（created=true）
func (r *Registry) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	s := newSession(uuid.NewString(), r.chatDelay, r.now())
	r.mu.Lock()
	if r.max > 0 && len(r.sessions) >= r.max {
		r.sweepLocked()
		if len(r.sessions) >= r.max {
			r.evictOldestLocked()
		}
	}
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, true
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep は期限切れセッションを削除して件数を返す
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry) sweepLocked() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *Registry) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range r.sessions {
		if t := s.idleSince(); oldestID == "" || t.Before(oldest) {
			oldestID, oldest = id, t
		}
	}
	if oldestID != "" {
		delete(r.sessions, oldestID)
	}
}

// Run は ctx が終わるまで interval ごとに Sweep する
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
