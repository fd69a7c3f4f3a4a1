package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personnel-api/internal/service"
	"personnel-api/internal/transport/http/router"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// 登录路由先挂
func (h *AuthHandler) Priority() int { return 10 }

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginOut struct {
	Token string `json:"token"`
}

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	router.Register(g, router.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth",
		Binder: router.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			tok, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			return loginOut{Token: tok}, err
		},
	})
}
