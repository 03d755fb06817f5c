package usecase

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/i18n"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// 言語切替の待ち時間
const DefaultLanguageSwitchDelay = 300 * time.Millisecond

// 言語設定の保存先
type LanguageStore interface {
	Language() string
	SetLanguage(lang string) error
}

type PreferenceUsecase struct {
	prefs LanguageStore
	tr    *i18n.Translator
	delay time.Duration
	log   *zap.Logger
}

// DI
func NewPreferenceUsecase(prefs LanguageStore, tr *i18n.Translator, delay time.Duration, log *zap.Logger) *PreferenceUsecase {
	return &PreferenceUsecase{prefs: prefs, tr: tr, delay: delay, log: log}
}

type LanguageOutput struct {
	Current   string          `json:"current"`
	Supported []i18n.Language `json:"supported"`
}

func (u *PreferenceUsecase) Language(sess *session.Session) LanguageOutput {
	return LanguageOutput{Current: sess.Store.State().CurrentLanguage, Supported: i18n.Supported}
}

// SetLanguage は保存してから store に反映する。
// 保存に失敗しても画面上の切替は行う。
func (u *PreferenceUsecase) SetLanguage(ctx context.Context, sess *session.Session, lang string) (LanguageOutput, error) {
	if !i18n.IsSupported(lang) {
		return LanguageOutput{}, NewHTTPError(http.StatusBadRequest, "unsupported language")
	}
	lang = i18n.BaseLanguage(lang)

	if u.delay > 0 {
		t := time.NewTimer(u.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return LanguageOutput{}, ctx.Err()
		case <-t.C:
		}
	}

	if err := u.prefs.SetLanguage(lang); err != nil {
		u.log.Warn("language preference not saved", zap.String("lang", lang), zap.Error(err))
	}
	sess.Store.Dispatch(store.SetLanguage{Language: lang})
	return u.Language(sess), nil
}

// Translate は画面文言をセッションの言語にする
func (u *PreferenceUsecase) Translate(sess *session.Session, texts []string) map[string]string {
	lang := sess.Store.State().CurrentLanguage
	out := make(map[string]string, len(texts))
	for _, t := range texts {
		out[t] = u.tr.Translate(lang, t)
	}
	return out
}

func (u *PreferenceUsecase) ToggleDarkMode(sess *session.Session) bool {
	return sess.Store.Dispatch(store.ToggleDarkMode{}).IsDarkMode
}
