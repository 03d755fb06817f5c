package gateway

import (
	"errors"
	"fmt"
)

// バックエンド未設定。読み取りは空、書き込みはこのエラー。
var ErrNotConfigured = errors.New("database not configured")

var (
	// 入力・認証エラー（OperationError に包まれて返る）
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailTaken         = errors.New("user already registered")
	ErrPasswordTooShort   = errors.New("password should be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidToken       = errors.New("invalid session token")
)

// OperationError はバックエンド操作の失敗（通信・検証など）
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Err: err}
}

// IsOperationError は err が OperationError かどうか
func IsOperationError(err error) bool {
	var oe *OperationError
	return errors.As(err, &oe)
}
