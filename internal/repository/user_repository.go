package repository

import (
	"context"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

// プロフィール編集で変えられる項目
type ProfileUpdate struct {
	Name     string
	Location string
	Phone    string
	Avatar   string
}

// profilesの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（メール重複は ErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。無ければ ErrNotFound
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。無ければ ErrNotFound
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*model.User, error)
}
