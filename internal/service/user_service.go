package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"personnel-api/internal/core/cache"
	"personnel-api/internal/domain"
	"personnel-api/pkg/utils"
)

const (
	msgInvalidID  = "Invalid user ID format"
	msgEmailTaken = "User with this email already exists"
)

type CreateResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type UserService struct {
	repo     domain.UserRepository
	log      *zap.Logger
	cache    *cache.Cache
	cacheTTL time.Duration
}

type Option func(*UserService)

// WithCache 开启 get-by-id 的 redis 缓存；写操作会主动失效
func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(s *UserService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func NewUserService(repo domain.UserRepository, log *zap.Logger, opts ...Option) *UserService {
	s := &UserService{repo: repo, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	if _, err := Authorize(ctx, OpList); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storageErr("", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, in domain.UserInput) (*CreateResult, error) {
	caller, err := Authorize(ctx, OpCreate)
	if err != nil {
		return nil, err
	}

	var u domain.User
	in.ApplyTo(&u)
	// 没传密码按空串处理，走长度校验而不是必填校验
	password := ""
	if in.Password != nil {
		password = *in.Password
	}
	if err := validateUser(candidate{user: &u, password: &password, input: &in}); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, u.Email, ""); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, domain.Internal("hash password failed", err)
	}
	u.PasswordHash = hash
	u.LastUpdated = time.Time{}

	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, s.storageErr(u.ID, err)
	}
	userWrites.WithLabelValues("create").Inc()
	s.log.Info("user created", zap.String("id", u.ID), zap.String("by", caller.UserID))

	return &CreateResult{
		ID:      u.ID,
		Message: fmt.Sprintf("User has been created with id = %s", u.ID),
	}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if _, err := Authorize(ctx, OpGet); err != nil {
		return nil, err
	}
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, s.storageErr(id, err)
	}
	return u, nil
}

func (s *UserService) load(ctx context.Context, id string) (*domain.User, error) {
	if s.cache == nil || !domain.ValidID(id) {
		return s.repo.FindByID(ctx, id)
	}
	return cache.GetOrLoadJSON[domain.User](s.cache, ctx, s.cache.Key("user", id), s.cacheTTL,
		func(ctx context.Context) (*domain.User, error) { return s.repo.FindByID(ctx, id) })
}

func (s *UserService) Update(ctx context.Context, id string, in domain.UserInput) (string, error) {
	caller, err := Authorize(ctx, OpUpdate)
	if err != nil {
		return "", err
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", s.storageErr(id, err)
	}

	next := current.Clone()
	in.ApplyTo(&next)
	if err := validateUser(candidate{user: &next, password: in.Password, input: &in}); err != nil {
		return "", err
	}
	if next.Email != current.Email {
		if err := s.ensureEmailFree(ctx, next.Email, id); err != nil {
			return "", err
		}
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return "", domain.Internal("hash password failed", err)
		}
		next.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, &next); err != nil {
		return "", s.storageErr(id, err)
	}
	s.invalidate(ctx, id)
	userWrites.WithLabelValues("update").Inc()
	s.log.Info("user updated", zap.String("id", id), zap.String("by", caller.UserID))

	return fmt.Sprintf("User with id = %s has been updated", id), nil
}

func (s *UserService) Delete(ctx context.Context, id string) (string, error) {
	caller, err := Authorize(ctx, OpDelete)
	if err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", s.storageErr(id, err)
	}
	s.invalidate(ctx, id)
	userWrites.WithLabelValues("delete").Inc()
	s.log.Info("user deleted", zap.String("id", id), zap.String("by", caller.UserID))

	return fmt.Sprintf("User with id = %s has been deleted", id), nil
}

// ensureEmailFree 提前给出冲突错误；并发下最终由存储层唯一约束兜底
func (s *UserService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return s.storageErr("", err)
	}
	if existing != nil && existing.ID != selfID {
		return domain.Conflict(msgEmailTaken)
	}
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.Key("user", id)); err != nil {
		s.log.Warn("user cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}

// storageErr 把存储层哨兵错误翻译成对外消息
func (s *UserService) storageErr(id string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return domain.InvalidID(msgInvalidID)
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound(fmt.Sprintf("User with id = %s not found", id))
	case errors.Is(err, domain.ErrDuplicateEmail):
		return domain.Conflict(msgEmailTaken)
	}
	s.log.Error("user storage failed", zap.String("id", id), zap.Error(err))
	return domain.Internal("user storage failed", err)
}
