package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"personnel-api/internal/core/config"
	"personnel-api/internal/core/database"
	"personnel-api/internal/domain"
)

const missingID = "666b5bfd8e3c464090cb69b8"

func newSQLiteRepo(t *testing.T) *UserRepo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	r := NewUserRepo(db, zap.NewNop())
	require.NoError(t, r.Migrate())
	return r
}

func backends(t *testing.T) map[string]func(t *testing.T) domain.UserRepository {
	return map[string]func(t *testing.T) domain.UserRepository{
		"memory": func(*testing.T) domain.UserRepository { return NewMemoryUserRepo() },
		"gorm-sqlite": func(t *testing.T) domain.UserRepository {
			return newSQLiteRepo(t)
		},
	}
}

func sampleUser(email string) *domain.User {
	salary := 4500.0
	return &domain.User{
		Name:         "Jan",
		Surname:      "Kowalski",
		Email:        email,
		PasswordHash: "hash",
		PhoneNumber:  "123456789",
		BirthDate:    "1990-05-01",
		Contract: &domain.Contract{
			Type:      domain.ContractEmployment,
			Salary:    &salary,
			Position:  domain.PositionIT,
			StartTime: "2020-01-01",
			EndTime:   "2025-01-01",
		},
		Notes: "notes",
	}
}

func TestUserRepositories(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("create and find", func(t *testing.T) {
				r := open(t)
				u := sampleUser("jan@api.pl")
				require.NoError(t, r.Create(ctx, u))
				assert.True(t, domain.ValidID(u.ID))
				assert.False(t, u.LastUpdated.IsZero())

				got, err := r.FindByID(ctx, u.ID)
				require.NoError(t, err)
				assert.Equal(t, u.Email, got.Email)
				assert.Equal(t, "hash", got.PasswordHash)
				require.NotNil(t, got.Contract)
				assert.Equal(t, 4500.0, *got.Contract.Salary)
				assert.Equal(t, "2025-01-01", got.Contract.EndTime)
				assert.True(t, got.LastUpdated.Equal(u.LastUpdated))

				byEmail, err := r.FindByEmail(ctx, "jan@api.pl")
				require.NoError(t, err)
				require.NotNil(t, byEmail)
				assert.Equal(t, u.ID, byEmail.ID)
			})

			t.Run("no contract stays nil", func(t *testing.T) {
				r := open(t)
				u := &domain.User{Name: "A", Surname: "B", Email: "nc@api.pl", PasswordHash: "h"}
				require.NoError(t, r.Create(ctx, u))
				got, err := r.FindByID(ctx, u.ID)
				require.NoError(t, err)
				assert.Nil(t, got.Contract)
				assert.False(t, got.IsAdmin)
				assert.False(t, got.IsActivated)
			})

			t.Run("email lookup is exact", func(t *testing.T) {
				r := open(t)
				require.NoError(t, r.Create(ctx, sampleUser("case@api.pl")))
				got, err := r.FindByEmail(ctx, "nobody@api.pl")
				require.NoError(t, err)
				assert.Nil(t, got)
			})

			t.Run("duplicate email", func(t *testing.T) {
				r := open(t)
				require.NoError(t, r.Create(ctx, sampleUser("dup@api.pl")))
				err := r.Create(ctx, sampleUser("dup@api.pl"))
				assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
			})

			t.Run("id shape checked before lookup", func(t *testing.T) {
				r := open(t)
				_, err := r.FindByID(ctx, "api_123")
				assert.ErrorIs(t, err, domain.ErrInvalidID)
				assert.ErrorIs(t, r.Delete(ctx, "api_123"), domain.ErrInvalidID)
				assert.ErrorIs(t, r.Update(ctx, &domain.User{ID: "api_123"}), domain.ErrInvalidID)

				_, err = r.FindByID(ctx, missingID)
				assert.ErrorIs(t, err, domain.ErrNotFound)
				assert.ErrorIs(t, r.Delete(ctx, missingID), domain.ErrNotFound)
			})

			t.Run("update restamps and persists", func(t *testing.T) {
				r := open(t)
				u := sampleUser("upd@api.pl")
				require.NoError(t, r.Create(ctx, u))
				before := u.LastUpdated

				u.Name = "Adam"
				u.IsActivated = true
				require.NoError(t, r.Update(ctx, u))
				assert.True(t, u.LastUpdated.After(before))

				got, err := r.FindByID(ctx, u.ID)
				require.NoError(t, err)
				assert.Equal(t, "Adam", got.Name)
				assert.True(t, got.IsActivated)
				assert.True(t, got.LastUpdated.After(before))

				got.IsActivated = false
				require.NoError(t, r.Update(ctx, got))
				again, err := r.FindByID(ctx, u.ID)
				require.NoError(t, err)
				assert.False(t, again.IsActivated)
			})

			t.Run("update to taken email", func(t *testing.T) {
				r := open(t)
				require.NoError(t, r.Create(ctx, sampleUser("a@api.pl")))
				b := sampleUser("b@api.pl")
				require.NoError(t, r.Create(ctx, b))
				b.Email = "a@api.pl"
				assert.ErrorIs(t, r.Update(ctx, b), domain.ErrDuplicateEmail)
			})

			t.Run("update missing", func(t *testing.T) {
				r := open(t)
				u := sampleUser("ghost@api.pl")
				u.ID = missingID
				assert.ErrorIs(t, r.Update(ctx, u), domain.ErrNotFound)
			})

			t.Run("delete is hard", func(t *testing.T) {
				r := open(t)
				u := sampleUser("del@api.pl")
				require.NoError(t, r.Create(ctx, u))
				require.NoError(t, r.Delete(ctx, u.ID))
				_, err := r.FindByID(ctx, u.ID)
				assert.ErrorIs(t, err, domain.ErrNotFound)
				assert.ErrorIs(t, r.Delete(ctx, u.ID), domain.ErrNotFound)

				// email 释放后可以重新使用
				require.NoError(t, r.Create(ctx, sampleUser("del@api.pl")))
			})

			t.Run("list returns all", func(t *testing.T) {
				r := open(t)
				var ids []string
				for i := 0; i < 3; i++ {
					u := sampleUser(fmt.Sprintf("list%d@api.pl", i))
					require.NoError(t, r.Create(ctx, u))
					ids = append(ids, u.ID)
				}
				all, err := r.List(ctx)
				require.NoError(t, err)
				require.Len(t, all, 3)
				var got []string
				for _, u := range all {
					got = append(got, u.ID)
				}
				assert.ElementsMatch(t, ids, got)
			})
		})
	}
}

func TestMemoryRepoConcurrentCreateSameEmail(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.Create(ctx, sampleUser("race@api.pl"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, ok)
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()
	u := sampleUser("copy@api.pl")
	require.NoError(t, r.Create(ctx, u))

	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	got.Name = "changed"
	got.Contract.Position = domain.PositionAccountant

	again, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jan", again.Name)
	assert.Equal(t, domain.PositionIT, again.Contract.Position)
}

func TestOpenMemory(t *testing.T) {
	r, cleanup, err := Open(context.Background(), config.DB{Driver: "memory"}, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &MemoryUserRepo{}, r)
}

func TestOpenSQLite(t *testing.T) {
	r, cleanup, err := Open(context.Background(), config.DB{
		Driver:       "sqlite",
		DSN:          "file:open_sqlite?mode=memory&cache=shared",
		MaxOpenConns: 1,
		AutoMigrate:  true,
		LogLevel:     "silent",
	}, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	u := sampleUser("open@api.pl")
	require.NoError(t, r.Create(context.Background(), u))
}

func TestPersistent(t *testing.T) {
	for driver, want := range map[string]bool{
		"":         false,
		"memory":   false,
		"sqlite":   true,
		"postgres": true,
		"mysql":    true,
		"mongo":    true,
	} {
		assert.Equal(t, want, Persistent(driver), "driver %q", driver)
	}
}
