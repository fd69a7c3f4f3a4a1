package service

import (
	"context"

	"go.uber.org/zap"

	"personnel-api/internal/core/auth"
	"personnel-api/internal/domain"
	"personnel-api/pkg/utils"
)

const msgBadCredentials = "Invalid email or password"

type AuthService struct {
	repo  domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(repo domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, jwter: jwter, log: log}
}

// Login 校验邮箱密码并签发 token（token 中带 isAdmin）
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("login lookup failed", zap.Error(err))
		return "", domain.Internal("login failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.Validation(msgBadCredentials)
	}
	tok, err := s.jwter.Issue(u.ID, u.IsAdmin)
	if err != nil {
		return "", domain.Internal("issue token failed", err)
	}
	s.log.Info("user logged in", zap.String("id", u.ID))
	return tok, nil
}
