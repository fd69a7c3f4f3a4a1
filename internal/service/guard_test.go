package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"personnel-api/internal/core/auth"
	"personnel-api/internal/domain"
)

func TestAuthorize(t *testing.T) {
	anon := context.Background()
	reader := auth.WithCaller(context.Background(), auth.Caller{UserID: "u1"})
	admin := auth.WithCaller(context.Background(), auth.Caller{UserID: "a1", IsAdmin: true})

	ops := []Operation{OpList, OpCreate, OpGet, OpUpdate, OpDelete}
	for _, op := range ops {
		_, err := Authorize(anon, op)
		assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err), "op %d", op)

		_, err = Authorize(admin, op)
		assert.NoError(t, err, "op %d", op)

		_, err = Authorize(reader, op)
		if op == OpGet {
			assert.NoError(t, err)
			continue
		}
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err), "op %d", op)
		assert.EqualError(t, err, "Unauthorized: Only administrators can perform this action")
	}
}
