package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// 指向一个不存在的 redis：读写都失败，必须退化为直接回源
func unreachable() *Cache {
	c := New("127.0.0.1:1", "", 0)
	return c
}

func TestKey(t *testing.T) {
	c := unreachable()
	defer c.Close()
	assert.Equal(t, "personnel:user:abc", c.Key("user", "abc"))
}

func TestGetOrLoadJSONFallsBackToLoader(t *testing.T) {
	c := unreachable()
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	calls := 0
	got, err := GetOrLoadJSON[item](c, ctx, c.Key("user", "1"), time.Minute, func(context.Context) (*item, error) {
		calls++
		return &item{ID: "1", Name: "Jan"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, &item{ID: "1", Name: "Jan"}, got)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadJSONPropagatesLoaderError(t *testing.T) {
	c := unreachable()
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	boom := errors.New("not found")
	_, err := GetOrLoadJSON[item](c, ctx, c.Key("user", "2"), time.Minute, func(context.Context) (*item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
