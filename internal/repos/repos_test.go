package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

func newUserRepo(t *testing.T, kv repos.KV) *repos.UserRepo {
	t.Helper()
	r, err := repos.NewUserRepo(kv, repos.BcryptHasher{Cost: bcrypt.MinCost})
	require.NoError(t, err)
	return r
}

func TestProductRepoSeedAndGet(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(repos.NewMemKV(), 0)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, repos.FeaturedProductID, all[0].ID)

	p, err := r.Get(ctx, "dito-5g-pro")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("199.99")))
	assert.Len(t, p.Images, 3)
	assert.Len(t, p.Specs, 6)

	missing, err := r.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepoSaveUpsertsAndDelete(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(repos.NewMemKV(), 0)

	edited := domain.Product{ID: "2", Name: "Chair v2", Price: decimal.NewFromInt(200), Category: "Furniture", Stock: 3}
	require.NoError(t, r.Save(ctx, edited))
	added := domain.Product{ID: "new-1", Name: "Lamp", Price: decimal.RequireFromString("19.90"), Category: "Home", Stock: 7}
	require.NoError(t, r.Save(ctx, added))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Chair v2", all[2].Name)
	assert.Equal(t, "new-1", all[4].ID)

	require.NoError(t, r.Delete(ctx, "2"))
	all, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, p := range all {
		assert.NotEqual(t, "2", p.ID)
	}
}

func TestProductRepoListHonoursCancellation(t *testing.T) {
	r := repos.NewProductRepo(repos.NewMemKV(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserRepoSeedLogin(t *testing.T) {
	ctx := context.Background()
	r := newUserRepo(t, repos.NewMemKV())

	u, err := r.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.NotEqual(t, "admin", u.Hash)

	u, err = r.Login(ctx, "user", "wrong")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepoRegister(t *testing.T) {
	ctx := context.Background()
	kv := repos.NewMemKV()
	r := newUserRepo(t, kv)

	_, err := r.Register(ctx, "Dup", "user", "pw")
	assert.ErrorIs(t, err, repos.ErrUserExists)
	users, err := repos.Read(ctx, kv, repos.UsersKey, []domain.User{})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	u, err := r.Register(ctx, "Jane", "jane@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBuyer, u.Role)
	assert.NotEmpty(t, u.ID)

	users, err = repos.Read(ctx, kv, repos.UsersKey, []domain.User{})
	require.NoError(t, err)
	assert.Len(t, users, 3)

	got, err := r.Login(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	byID, err := r.ByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Jane", byID.Name)

	other, err := r.Register(ctx, "Jim", "jim@example.com", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, u.ID, other.ID)
}

func sampleOrder(id, user string) domain.Order {
	items := []domain.CartItem{{
		Product:  domain.Product{ID: "1", Name: "Headphones", Price: decimal.RequireFromString("149.99")},
		Quantity: 2,
	}}
	return domain.Order{
		ID:              id,
		UserID:          user,
		Items:           items,
		Total:           decimal.RequireFromString("299.98"),
		Status:          domain.OrderStatusPending,
		CreatedAt:       "2026-01-02T03:04:05Z",
		ShippingAddress: "123 Main St",
		PaymentMethod:   "PayPal",
	}
}

func mustCreate(t *testing.T, r *repos.OrderRepo, o domain.Order) domain.Order {
	t.Helper()
	stored, err := r.Create(context.Background(), o)
	require.NoError(t, err)
	return stored
}

func TestOrderRepoCreateAndListByUser(t *testing.T) {
	ctx := context.Background()
	r := repos.NewOrderRepo(repos.NewMemKV())

	mustCreate(t, r, sampleOrder("o1", "user1"))
	mustCreate(t, r, sampleOrder("o2", "someone"))

	mine, err := r.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, sampleOrder("o1", "user1"), mine[0])

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := r.List(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderRepoUpdateStatus(t *testing.T) {
	ctx := context.Background()
	kv := repos.NewMemKV()
	r := repos.NewOrderRepo(kv)
	mustCreate(t, r, sampleOrder("o1", "user1"))
	mustCreate(t, r, sampleOrder("o2", "user1"))

	require.NoError(t, r.UpdateStatus(ctx, "o2", domain.OrderStatusShipped))
	o1, err := r.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, sampleOrder("o1", "user1"), *o1)
	o2, err := r.Get(ctx, "o2")
	require.NoError(t, err)
	want := sampleOrder("o2", "user1")
	want.Status = domain.OrderStatusShipped
	assert.Equal(t, want, *o2)

	// backwards transitions are accepted
	require.NoError(t, r.UpdateStatus(ctx, "o2", domain.OrderStatusPending))

	before, _, _ := kv.Get(ctx, repos.OrdersKey)
	require.NoError(t, r.UpdateStatus(ctx, "missing", domain.OrderStatusDelivered))
	after, _, _ := kv.Get(ctx, repos.OrdersKey)
	assert.Equal(t, before, after)
}

func TestOrderRepoCreateKeepsIDsUnique(t *testing.T) {
	ctx := context.Background()
	r := repos.NewOrderRepo(repos.NewMemKV())

	first := mustCreate(t, r, sampleOrder("1772600767000", "user1"))
	second := mustCreate(t, r, sampleOrder("1772600767000", "admin1"))
	third := mustCreate(t, r, sampleOrder("1772600767000", "user1"))
	assert.Equal(t, "1772600767000", first.ID)
	assert.Equal(t, "1772600767001", second.ID)
	assert.Equal(t, "1772600767002", third.ID)

	mustCreate(t, r, sampleOrder("o1", "user1"))
	_, err := r.Create(ctx, sampleOrder("o1", "user1"))
	assert.ErrorIs(t, err, repos.ErrOrderExists)

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
