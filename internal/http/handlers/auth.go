package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/http/middlewares"
	"github.com/geocoder89/fittrack/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Register(ctx context.Context, req user.RegisterRequest) (service.Session, error)
	Login(ctx context.Context, req user.LoginRequest) (service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type sessionResponse struct {
	Message      string   `json:"message"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// bcrypt dominates this call
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	sess, err := h.svc.Register(cctx, req)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, sessionResponse{
		Message:      "User created successfully",
		Token:        sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		User:         NewUserView(sess.User),
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	sess, err := h.svc.Login(cctx, req)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sessionResponse{
		Message:      "Login successful",
		Token:        sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		User:         NewUserView(sess.User),
	})
}

// Refresh takes the refresh token as a bearer credential, or from the JSON body.
func (h *AuthHandler) Refresh(ctx *gin.Context) {
	token := middlewares.BearerToken(ctx)

	if token == "" && ctx.Request.ContentLength != 0 {
		var body refreshBody
		if err := ctx.ShouldBindJSON(&body); err == nil {
			token = body.RefreshToken
		}
	}

	access, err := h.svc.Refresh(ctx.Request.Context(), token)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": access})
}
