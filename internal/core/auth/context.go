package auth

import "context"

// Caller 是已鉴权的调用方；没有 Caller 即视为未登录
type Caller struct {
	UserID  string
	IsAdmin bool
}

// System 供 CLI 等内部入口使用的管理员身份
func System() Caller { return Caller{UserID: "system", IsAdmin: true} }

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
