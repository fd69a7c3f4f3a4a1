package service

import (
	"context"

	"personnel-api/internal/core/auth"
	"personnel-api/internal/domain"
)

const msgAdminOnly = "Unauthorized: Only administrators can perform this action"

type Operation uint8

const (
	OpList Operation = iota + 1
	OpCreate
	OpGet
	OpUpdate
	OpDelete
)

// Capability 只有两档：只读 / 管理员
type Capability uint8

const (
	CapReadOnly Capability = iota + 1
	CapAdmin
)

func capabilityOf(c auth.Caller) Capability {
	if c.IsAdmin {
		return CapAdmin
	}
	return CapReadOnly
}

func (op Operation) requires() Capability {
	if op == OpGet {
		return CapReadOnly
	}
	return CapAdmin
}

// Authorize 所有 user 操作的统一入口检查，先于校验和存储访问执行
func Authorize(ctx context.Context, op Operation) (auth.Caller, error) {
	caller, ok := auth.CallerFrom(ctx)
	if !ok {
		return auth.Caller{}, domain.Unauthenticated()
	}
	if capabilityOf(caller) < op.requires() {
		return caller, domain.Forbidden(msgAdminOnly)
	}
	return caller, nil
}
