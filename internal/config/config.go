package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// バックエンド設定のプレースホルダー（.env.example のまま = 未設定扱い）
const (
	PlaceholderBackendURL = "https://your-project.example.com"
	PlaceholderBackendKey = "your-anon-key-here"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	BackendURL string // postgres://... または sqlite:ファイル名
	BackendKey string // 公開APIキー（apikeyヘッダ）

	JWTSecret   string        // セッショントークン署名シークレット
	SessionTTL  time.Duration // セッションの有効期間
	MaxSessions int           // 同時に保持するセッション数（0は無制限）

	RedisAddr string // 商品キャッシュ（空なら無効）
	FEURL     string // フロントURL（CORS）

	ChatDelay time.Duration // アシスタントの応答遅延
	PrefsPath string        // 言語設定の保存先
	Tracing   bool          // stdoutトレース
	LogLevel  string
}

// Loadは環境変数
func Load() (Config, error) {
	chatDelay, err := durationEnv("CHAT_DELAY", time.Second)
	if err != nil {
		return Config{}, err
	}
	sessionTTL, err := durationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	maxSessions, err := intEnv("MAX_SESSIONS", 10000)
	if err != nil {
		return Config{}, err
	}
	tracing, err := boolEnv("TRACING", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "dev"),

		BackendURL: strings.TrimSpace(os.Getenv("BACKEND_URL")),
		BackendKey: strings.TrimSpace(os.Getenv("BACKEND_KEY")),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		SessionTTL:  sessionTTL,
		MaxSessions: maxSessions,

		RedisAddr: os.Getenv("REDIS_ADDR"),
		FEURL:     getenv("FE_URL", "http://localhost:5173"),

		ChatDelay: chatDelay,
		PrefsPath: getenv("PREFS_PATH", "data/preferences.yaml"),
		Tracing:   tracing,
		LogLevel:  getenv("LOG_LEVEL", "info"),
	}

	//必須チェック
	if cfg.GoEnv != "dev" && cfg.GoEnv != "prod" && cfg.GoEnv != "test" {
		return Config{}, fmt.Errorf("GO_ENV must be dev, prod or test")
	}
	if cfg.JWTSecret == "" {
		if cfg.GoEnv == "prod" {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = "dev_secret_change_me"
	}
	if maxSessions < 0 {
		return Config{}, fmt.Errorf("MAX_SESSIONS must not be negative")
	}
	if chatDelay < 0 {
		return Config{}, fmt.Errorf("CHAT_DELAY must not be negative")
	}

	return cfg, nil
}

// IsBackendConfigured はURLとキーの両方が実値のときだけ true。
// false の場合はデモデータで動く。
func (c Config) IsBackendConfigured() bool {
	if c.BackendURL == "" || c.BackendKey == "" {
		return false
	}
	if c.BackendURL == PlaceholderBackendURL || c.BackendKey == PlaceholderBackendKey {
		return false
	}
	return true
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be int: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}
