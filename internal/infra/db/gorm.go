package db

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

// Connect はDBに接続して *gorm.DB を返す。
// "sqlite:" で始まるDSNはsqlite、それ以外はpostgresとして開く。
func Connect(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("dsn is empty")
	}

	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // 一意制約違反を gorm.ErrDuplicatedKey にする
	}

	if path, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		return gorm.Open(sqlite.Open(path), cfg)
	}
	return gorm.Open(postgres.Open(dsn), cfg)
}

// Migrate はバックエンドの4テーブルを作成・更新する
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.MarketTrend{},
	)
}

// OpenMemory はテスト用のインメモリsqlite（マイグレーション済み）
func OpenMemory() (*gorm.DB, error) {
	// 呼び出しごとに別DB
	gdb, err := Connect("sqlite:file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}
