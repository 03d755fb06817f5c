package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/middleware"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /auth/signup のリクエストボディ
type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

// /auth/signin のリクエストボディ
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
}

type meResponse struct {
	User *model.User `json:"user"`
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/signup", withSession(h.signUp))
	g.POST("/auth/signin", withSession(h.signIn))
	g.POST("/auth/signout", withSession(h.signOut))
	g.GET("/auth/me", withSession(h.me))
	g.PATCH("/auth/profile", withSession(h.updateProfile), middleware.RequireUser())
}

func (h *AuthHandler) signUp(c echo.Context, sess *session.Session) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.SignUp(c.Request().Context(), sess, usecase.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     model.Role(req.Role),
		Location: req.Location,
		Phone:    req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) signIn(c echo.Context, sess *session.Session) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.SignIn(c.Request().Context(), sess, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) signOut(c echo.Context, sess *session.Session) error {
	h.uc.SignOut(c.Request().Context(), sess)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) me(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, meResponse{User: sess.Store.State().User})
}

func (h *AuthHandler) updateProfile(c echo.Context, sess *session.Session) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	user, err := h.uc.UpdateProfile(c.Request().Context(), sess, usecase.UpdateProfileInput{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, meResponse{User: user})
}
