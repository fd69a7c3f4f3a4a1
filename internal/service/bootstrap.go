package service

import (
	"context"

	"go.uber.org/zap"

	"personnel-api/internal/core/auth"
	"personnel-api/internal/domain"
)

// AdminSeed 描述进程启动时需要存在的管理员
type AdminSeed struct {
	Email    string
	Password string
	Name     string
	Surname  string
}

// EnsureAdmin 在 email 不存在时以系统身份创建已激活的管理员。
// 已存在（包括并发下被别人先建）时返回 created=false，不修改原记录
func (s *UserService) EnsureAdmin(ctx context.Context, seed AdminSeed) (created bool, err error) {
	existing, err := s.repo.FindByEmail(ctx, seed.Email)
	if err != nil {
		return false, s.storageErr("", err)
	}
	if existing != nil {
		return false, nil
	}

	yes := true
	res, err := s.Create(auth.WithCaller(ctx, auth.System()), domain.UserInput{
		Name:        &seed.Name,
		Surname:     &seed.Surname,
		Email:       &seed.Email,
		Password:    &seed.Password,
		IsAdmin:     &yes,
		IsActivated: &yes,
	})
	if domain.KindOf(err) == domain.KindConflict {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info("bootstrap admin created", zap.String("id", res.ID))
	return true, nil
}
