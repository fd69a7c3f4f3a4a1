package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"

	"personnel-api/internal/domain"
	"personnel-api/internal/service"
	resp "personnel-api/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json" // 从 JSON 绑定；空 body 视为空对象
	BindNone Binder = "none" // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/users/:id"
	Binder  Binder
	Status  int                             // 成功时的状态码，默认 200
	Guard   func(ctx context.Context) error // 在绑定之前执行
	Handler func(c *gin.Context, in *I) (O, error)
}

// Guard 把 service 的权限检查挂到 Action 上
func Guard(op service.Operation) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := service.Authorize(ctx, op)
		return err
	}
}

func Register[I any, O any](g gin.IRoutes, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 鉴权
		if a.Guard != nil {
			if err := a.Guard(c.Request.Context()); err != nil {
				resp.Fail(c, err)
				return
			}
		}

		// 2) 绑定入参
		var in I
		if a.Binder == BindJSON {
			if err := bindJSON(c, &in); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Msg("Request body too large"))
					return
				}
				resp.Fail(c, bindError(err))
				return
			}
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			resp.Fail(c, err)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default: // 默认 POST
		g.POST(a.Path, h)
	}
}

func bindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return nil
	}
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

const (
	castPrefix     = "User validation failed: "
	msgInvalidJSON = "Invalid JSON body"
)

// bindError 把解码错误翻成对外消息，不透出 Go 类型名
func bindError(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		path := te.Field
		if path == "" {
			return domain.Validation(fmt.Sprintf("%sCast to %s failed for value of type %s", castPrefix, jsonKind(te.Type), te.Value))
		}
		return domain.Validation(fmt.Sprintf("%s%s: Cast to %s failed for value of type %s at path `%s`",
			castPrefix, path, jsonKind(te.Type), te.Value, path))
	}
	return domain.Validation(msgInvalidJSON)
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "Value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "String"
	case reflect.Bool:
		return "Boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "Number"
	case reflect.Slice, reflect.Array:
		return "Array"
	default:
		return "Object"
	}
}
