package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"personnel-api/internal/domain"
)

const msgInternal = "Internal Server Error"

// Message 是所有非实体响应的统一形状
type Message struct {
	Message string `json:"message"`
}

func Msg(s string) Message { return Message{Message: s} }

// Fail 把 domain 错误写成响应。未登录返回纯文本，内部错误不透出细节
func Fail(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, Msg(msgInternal))
		return
	}
	status := StatusOf(de.Kind)
	switch de.Kind {
	case domain.KindUnauthenticated:
		c.Abort()
		c.String(status, de.Error())
	case domain.KindInternal:
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, Msg(msgInternal))
	default:
		c.AbortWithStatusJSON(status, Msg(de.Error()))
	}
}
