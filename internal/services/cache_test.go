package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

func TestUnknownSessionsAreNotCached(t *testing.T) {
	ctx := context.Background()
	kv := repos.NewMemKV()
	carts := NewCartService(kv, nil)
	sessions := NewSessionService(kv, carts)

	for i := 0; i < 1000; i++ {
		sid := fmt.Sprintf("forged-%d", i)
		u, err := sessions.Current(ctx, sid)
		require.NoError(t, err)
		assert.Nil(t, u)
		v, err := carts.View(ctx, sid)
		require.NoError(t, err)
		assert.Empty(t, v.Items)
	}
	assert.Empty(t, sessions.users)
	assert.Empty(t, carts.carts)
}

func TestEmptiedCartsLeaveTheCache(t *testing.T) {
	ctx := context.Background()
	kv := repos.NewMemKV()
	carts := NewCartService(kv, nil)
	sessions := NewSessionService(kv, carts)
	p := domain.Product{ID: "1", Name: "Headphones", Price: decimal.RequireFromString("149.99")}

	_, err := carts.Add(ctx, "s1", p, 1)
	require.NoError(t, err)
	_, err = carts.Add(ctx, "s2", p, 1)
	require.NoError(t, err)
	require.NoError(t, sessions.Login(ctx, "s2", domain.User{ID: "user1", Role: domain.RoleBuyer}))
	assert.Len(t, carts.carts, 2)
	assert.Len(t, sessions.users, 1)

	_, err = carts.Remove(ctx, "s1", "1")
	require.NoError(t, err)
	require.NoError(t, sessions.Logout(ctx, "s2"))

	assert.Empty(t, carts.carts)
	assert.Empty(t, sessions.users)
}
