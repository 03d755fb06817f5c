package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// ヘッダーで選べる言語。テーブルがあるのは hi/mr/ta のみ。
var Supported = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "हिंदी"},
	{Code: "mr", Name: "मराठी"},
	{Code: "ta", Name: "தமிழ்"},
	{Code: "te", Name: "తెలుగు"},
	{Code: "kn", Name: "ಕನ್ನಡ"},
	{Code: "gu", Name: "ગુજરાતી"},
	{Code: "pa", Name: "ਪੰਜਾਬੀ"},
}

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Translator は言語コード -> (原文 -> 訳文) の静的テーブル
type Translator struct {
	tables map[string]map[string]string
}

// Load は埋め込みYAMLからテーブルを読む
func Load() (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	tables := map[string]map[string]string{}
	for _, e := range entries {
		raw, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		t := map[string]string{}
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("locale %s: %w", e.Name(), err)
		}
		tables[strings.TrimSuffix(e.Name(), ".yaml")] = t
	}
	return &Translator{tables: tables}, nil
}

// MustLoad は Load の panic 版（埋め込みデータが壊れていれば起動時に落とす）
func MustLoad() *Translator {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

// NewTranslator はテスト等で任意のテーブルを使う
func NewTranslator(tables map[string]map[string]string) *Translator {
	return &Translator{tables: tables}
}

// Translate は lang のテーブルで text を引く。
// en、テーブル無し、キー無しの場合は text をそのまま返す。
func (t *Translator) Translate(lang string, text string) string {
	base := BaseLanguage(lang)
	if base == "" || base == "en" {
		return text
	}
	table, ok := t.tables[base]
	if !ok {
		return text
	}
	if v, ok := table[text]; ok {
		return v
	}
	return text
}

// HasTable は lang に訳テーブルがあるか
func (t *Translator) HasTable(lang string) bool {
	_, ok := t.tables[BaseLanguage(lang)]
	return ok
}

// BaseLanguage は "hi-IN" -> "hi" のように基本言語を返す
func BaseLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(strings.SplitN(lang, "-", 2)[0])
	}
	b, _ := tag.Base()
	return b.String()
}

// IsSupported はヘッダーの言語一覧に含まれるか
func IsSupported(lang string) bool {
	base := BaseLanguage(lang)
	for _, l := range Supported {
		if l.Code == base {
			return true
		}
	}
	return false
}
