package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personnel-api/internal/domain"
	"personnel-api/internal/service"
	resp "personnel-api/internal/transport/http/response"
	"personnel-api/internal/transport/http/router"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// MountAPI 挂载 /users 下的 CRUD。权限在绑定之前检查
func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	users := g.Group("/users")

	router.Register(users, router.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "",
		Binder: router.BindNone,
		Guard:  router.Guard(service.OpList),
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	router.Register(users, router.Action[domain.UserInput, *service.CreateResult]{
		Method: http.MethodPost,
		Path:   "",
		Binder: router.BindJSON,
		Guard:  router.Guard(service.OpCreate),
		Handler: func(c *gin.Context, in *domain.UserInput) (*service.CreateResult, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})

	router.Register(users, router.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: router.BindNone,
		Guard:  router.Guard(service.OpGet),
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.svc.Get(c.Request.Context(), c.Param("id"))
		},
	})

	router.Register(users, router.Action[domain.UserInput, resp.Message]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: router.BindJSON,
		Guard:  router.Guard(service.OpUpdate),
		Handler: func(c *gin.Context, in *domain.UserInput) (resp.Message, error) {
			msg, err := h.svc.Update(c.Request.Context(), c.Param("id"), *in)
			return resp.Msg(msg), err
		},
	})

	router.Register(users, router.Action[struct{}, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: router.BindNone,
		Guard:  router.Guard(service.OpDelete),
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			msg, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
			return resp.Msg(msg), err
		},
	})
}
