package store

import "sync"

// Store は State を1つ保持し、Dispatch で Reduce を直列に適用する。
type Store struct {
	mu      sync.RWMutex
	state   *State
	subs    map[int]func(*State)
	nextSub int
}

// DI
func New(initial *State) *Store {
	if initial == nil {
		initial = InitialState()
	}
	return &Store{
		state: initial,
		subs:  map[int]func(*State){},
	}
}

// State は現在の状態（読み取り専用として扱う）
func (s *Store) State() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch はアクションを適用して新しい状態を返す。
// 状態が変わったときだけ購読者に通知する。
func (s *Store) Dispatch(a Action) *State {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	s.state = next
	var subs []func(*State)
	if next != prev {
		subs = make([]func(*State), 0, len(s.subs))
		for _, fn := range s.subs {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe は状態変化の通知を登録する。戻り値で解除。
func (s *Store) Subscribe(fn func(*State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
