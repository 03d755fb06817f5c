package i18n

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_EmbeddedTables(t *testing.T) {
	tr, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "कार्ट में जोड़ें", tr.Translate("hi", "Add to Cart"))
	assert.Equal(t, "कार्ट में जोड़ें", tr.Translate("hi-IN", "Add to Cart"))
	assert.Equal(t, "Add to Cart", tr.Translate("en", "Add to Cart"))
	assert.Equal(t, "Unknown key", tr.Translate("hi", "Unknown key"))
	assert.True(t, tr.HasTable("ta"))
	assert.True(t, tr.HasTable("mr"))
}

// テーブルの無い言語はすべてのキーで原文を返す
func TestTranslate_LanguageWithoutTableFallsBack(t *testing.T) {
	tr, err := Load()
	require.NoError(t, err)

	for _, key := range []string{"Home", "Add to Cart", "Total", "Logout"} {
		for _, lang := range []string{"te", "kn", "gu", "pa", "fr"} {
			assert.Equal(t, key, tr.Translate(lang, key))
		}
	}
	assert.False(t, tr.HasTable("te"))
}

func TestBaseLanguage(t *testing.T) {
	assert.Equal(t, "hi", BaseLanguage("hi-IN"))
	assert.Equal(t, "ta", BaseLanguage("ta"))
	assert.Equal(t, "", BaseLanguage(""))
	assert.True(t, IsSupported("pa-IN"))
	assert.False(t, IsSupported("fr"))
}

func TestPreferenceStore_PersistsLanguage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "prefs", "prefs.yaml")

	s, err := NewPreferenceStore(p)
	require.NoError(t, err)
	assert.Equal(t, "en", s.Language())

	require.NoError(t, s.SetLanguage("mr"))

	reopened, err := NewPreferenceStore(p)
	require.NoError(t, err)
	assert.Equal(t, "mr", reopened.Language())
}

func TestPreferenceStore_InMemory(t *testing.T) {
	s, err := NewPreferenceStore("")
	require.NoError(t, err)
	require.NoError(t, s.SetLanguage("ta"))
	assert.Equal(t, "ta", s.Language())
}
