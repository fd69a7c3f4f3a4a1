package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personnel-api/internal/domain"
	"personnel-api/pkg/utils"
)

func TestEnsureAdmin(t *testing.T) {
	svc, r := newService(t)
	seed := AdminSeed{Email: "root@api.pl", Password: "123456789", Name: "Root", Surname: "Admin"}

	// 空库、无调用方上下文也能建出第一个管理员
	created, err := svc.EnsureAdmin(context.Background(), seed)
	require.NoError(t, err)
	assert.True(t, created)

	u, err := r.FindByEmail(context.Background(), "root@api.pl")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsAdmin)
	assert.True(t, u.IsActivated)
	assert.True(t, utils.CheckPassword("123456789", u.PasswordHash))

	// 第二次启动不重复创建，也不覆盖密码
	seed.Password = "another-password"
	created, err = svc.EnsureAdmin(context.Background(), seed)
	require.NoError(t, err)
	assert.False(t, created)

	users, _ := r.List(context.Background())
	assert.Len(t, users, 1)
	assert.True(t, utils.CheckPassword("123456789", users[0].PasswordHash))
}

func TestEnsureAdminValidates(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.EnsureAdmin(context.Background(), AdminSeed{Email: "root@api.pl", Password: "short", Name: "Root", Surname: "Admin"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.EqualError(t, err, msgPasswordLength)
}
