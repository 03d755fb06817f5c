package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/gateway"
	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

type AuthUsecase struct {
	gw     Gateway
	notify *Notifier
	log    *zap.Logger
}

// DI
func NewAuthUsecase(gw Gateway, notify *Notifier, log *zap.Logger) *AuthUsecase {
	return &AuthUsecase{gw: gw, notify: notify, log: log}
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
	Location string
	Phone    string
}

type AuthOutput struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
}

// SignUp は登録してそのままサインインする
func (u *AuthUsecase) SignUp(ctx context.Context, sess *session.Session, in SignUpInput) (AuthOutput, error) {
	_, err := u.gw.SignUp(ctx, gateway.SignUpInput{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Role:     in.Role,
		Location: in.Location,
		Phone:    in.Phone,
	})
	if err != nil {
		return AuthOutput{}, u.authFailed(sess, err)
	}
	s, err := u.gw.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		return AuthOutput{}, u.authFailed(sess, err)
	}
	u.establish(sess, s)
	u.notify.Notify(sess.Store, model.NotifySuccess, MsgWelcome+", "+s.User.Name+"!", ttlAuth)
	return toAuthOutput(s), nil
}

func (u *AuthUsecase) SignIn(ctx context.Context, sess *session.Session, email string, password string) (AuthOutput, error) {
	s, err := u.gw.SignIn(ctx, email, password)
	if err != nil {
		return AuthOutput{}, u.authFailed(sess, err)
	}
	u.establish(sess, s)
	u.notify.Notify(sess.Store, model.NotifySuccess, MsgWelcomeBack+", "+s.User.Name+"!", ttlAuth)
	return toAuthOutput(s), nil
}

// SignOut はトークン失効の成否に関わらずローカル状態を消す
func (u *AuthUsecase) SignOut(ctx context.Context, sess *session.Session) {
	if err := u.gw.SignOut(ctx, sess.Token()); err != nil {
		u.log.Warn("sign out failed", zap.Error(err))
	}
	sess.SetToken("")
	sess.ResetCheckout()
	sess.Store.Dispatch(store.SetUser{User: nil})
	sess.Store.Dispatch(store.ClearCart{})
	u.notify.Notify(sess.Store, model.NotifySuccess, MsgLoggedOut, ttlNormal)
}

type UpdateProfileInput struct {
	Name     string
	Location string
	Phone    string
	Avatar   string
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, sess *session.Session, in UpdateProfileInput) (*model.User, error) {
	current := sess.Store.State().User
	if current == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	user, err := u.gw.UpdateProfile(ctx, current.ID, repo.ProfileUpdate{
		Name:     in.Name,
		Location: in.Location,
		Phone:    in.Phone,
		Avatar:   in.Avatar,
	})
	if err != nil {
		u.notify.Notify(sess.Store, model.NotifyError, MsgProfileUpdateFailed, ttlNormal)
		return nil, toHTTPError(err, MsgProfileUpdateFailed)
	}
	sess.Store.Dispatch(store.SetUser{User: user})
	u.notify.Notify(sess.Store, model.NotifySuccess, MsgProfileUpdated, ttlNormal)
	return user, nil
}

func (u *AuthUsecase) establish(sess *session.Session, s gateway.Session) {
	sess.SetToken(s.Token)
	sess.Store.Dispatch(store.SetUser{User: s.User})
}

func (u *AuthUsecase) authFailed(sess *session.Session, err error) error {
	msg := AuthErrorMessage(err)
	u.notify.Notify(sess.Store, model.NotifyError, msg, ttlAuth)
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, gateway.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, gateway.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, gateway.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case !errors.Is(err, gateway.ErrPasswordTooShort) &&
		!errors.Is(err, gateway.ErrInvalidEmail) &&
		!errors.Is(err, gateway.ErrInvalidRole) &&
		!errors.Is(err, gateway.ErrInvalidInput):
		status = http.StatusInternalServerError
	}
	return NewHTTPError(status, msg)
}

// AuthErrorMessage は認証エラーを画面用の固定文言にする
func AuthErrorMessage(err error) string {
	switch {
	case errors.Is(err, gateway.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, gateway.ErrEmailTaken):
		return MsgEmailTaken
	case errors.Is(err, gateway.ErrPasswordTooShort):
		return MsgPasswordTooShort
	case errors.Is(err, gateway.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, gateway.ErrNotConfigured):
		return MsgNotConfigured
	default:
		return MsgAuthFailed
	}
}

func toAuthOutput(s gateway.Session) AuthOutput {
	return AuthOutput{User: s.User, Token: s.Token, ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339)}
}

// toHTTPError はゲートウェイのエラーを HTTPError にする
func toHTTPError(err error, msg string) error {
	switch {
	case errors.Is(err, gateway.ErrNotConfigured):
		return NewHTTPError(http.StatusServiceUnavailable, MsgNotConfigured)
	case errors.Is(err, gateway.ErrInvalidInput),
		errors.Is(err, gateway.ErrInvalidRole),
		errors.Is(err, gateway.ErrInvalidEmail),
		errors.Is(err, gateway.ErrPasswordTooShort):
		return NewHTTPError(http.StatusBadRequest, msg)
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	default:
		return NewHTTPError(http.StatusInternalServerError, msg)
	}
}
