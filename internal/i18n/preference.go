package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// 保存キー（元のクライアントの localStorage キーと同じ）
const PreferenceKey = "kisanconnect_language"

// PreferenceStore は選択言語をYAMLファイルに永続化する。
// path が空のときはメモリのみ。
type PreferenceStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

func NewPreferenceStore(path string) (*PreferenceStore, error) {
	s := &PreferenceStore{path: path, data: map[string]string{}}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("preferences %s: %w", path, err)
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	return s, nil
}

// Language は保存済みの言語。無ければ "en"。
func (s *PreferenceStore) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := s.data[PreferenceKey]; v != "" {
		return v
	}
	return "en"
}

func (s *PreferenceStore) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[PreferenceKey] = lang
	if s.path == "" {
		return nil
	}
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o644)
}
