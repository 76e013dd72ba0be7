// internal/service/cart/application/service_test.go
package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"storefront/internal/pricing"
	"storefront/internal/service/cart/domain"
	"storefront/internal/service/cart/domain/port"
)

// --- 测试替身 ---

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart // keyed by token
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *fakeCartRepo) Create(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cart
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.carts[cart.Token] = &cp
	return nil
}

func (r *fakeCartRepo) FindByToken(_ context.Context, token string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[token]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (r *fakeCartRepo) FindByID(_ context.Context, id string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cart := range r.carts {
		if cart.ID == id {
			return copyCart(cart), nil
		}
	}
	return nil, domain.ErrCartNotFound
}

func (r *fakeCartRepo) UpsertItem(_ context.Context, cartID string, item domain.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart := r.byID(cartID)
	if cart == nil {
		return domain.ErrCartNotFound
	}
	if existing, ok := cart.FindItem(item.SKU); ok {
		*existing = item
	} else {
		cart.Items = append(cart.Items, item)
	}
	return nil
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, cartID, sku string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart := r.byID(cartID)
	if cart == nil {
		return domain.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].SKU == sku {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrLineItemNotFound
}

func (r *fakeCartRepo) SavePromoCode(_ context.Context, cartID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart := r.byID(cartID)
	if cart == nil {
		return domain.ErrCartNotFound
	}
	cart.PromoCode = code
	return nil
}

func (r *fakeCartRepo) byID(id string) *domain.Cart {
	for _, cart := range r.carts {
		if cart.ID == id {
			return cart
		}
	}
	return nil
}

func copyCart(cart *domain.Cart) *domain.Cart {
	cp := *cart
	cp.Items = append([]domain.LineItem(nil), cart.Items...)
	return &cp
}

type fakeCatalog struct {
	variants map[string]*port.Variant
	err      error // 非空时模拟基础设施故障
}

func (c *fakeCatalog) FindBySKU(_ context.Context, sku string) (*port.Variant, error) {
	if c.err != nil {
		return nil, c.err
	}
	v, ok := c.variants[sku]
	if !ok {
		return nil, port.ErrVariantNotFound
	}
	cp := *v
	return &cp, nil
}

type fakePromos struct {
	active map[string]*port.ResolvedPromo
}

func (p *fakePromos) FindActiveByCode(_ context.Context, code string, _ time.Time) (*port.ResolvedPromo, error) {
	resolved, ok := p.active[code]
	if !ok {
		return nil, port.ErrPromoNotFound
	}
	return resolved, nil
}

// fakeCache 永远未命中，记录失效与回填调用。
type fakeCache struct {
	mu         sync.Mutex
	deletes    int
	sets       int
	setBounded bool // 回填调用的 ctx 是否带截止时间
}

func (c *fakeCache) Get(context.Context, string) (*domain.Cart, error) {
	return nil, port.ErrCacheMiss
}

func (c *fakeCache) Set(ctx context.Context, _ string, _ *domain.Cart) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	_, c.setBounded = ctx.Deadline()
	return nil
}

func (c *fakeCache) Delete(context.Context, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	return nil
}

func newTestCartService(repo *fakeCartRepo, catalog *fakeCatalog, promos *fakePromos, cache *fakeCache) *CartService {
	return NewCartService(repo, catalog, promos, cache, noop.NewTracerProvider().Tracer("test"))
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{variants: map[string]*port.Variant{
		"WH-BLK": {SKU: "WH-BLK", Title: "Wireless Headphones", UnitPrice: 29900, Currency: "USD", Stock: 5},
		"FW-40":  {SKU: "FW-40", Title: "Fitness Watch", UnitPrice: 19900, Currency: "USD", Stock: 2},
		"LS-GRY": {SKU: "LS-GRY", Title: "Laptop Stand", UnitPrice: 4900, Currency: "USD", Stock: 0},
	}}
}

// --- 测试 ---

func TestAddItem_CreatesCartLazily(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, &fakeCache{})

	snapshot, err := svc.AddItem(context.Background(), "tok-1", "WH-BLK", 2)
	require.NoError(t, err)

	assert.Len(t, snapshot.Items, 1)
	assert.Equal(t, "WH-BLK", snapshot.Items[0].SKU)
	assert.Equal(t, 2, snapshot.Items[0].Qty)
	assert.Equal(t, int64(59800), snapshot.Subtotal)
	assert.Equal(t, int64(59800), snapshot.GrandTotal)
	assert.Nil(t, snapshot.PromoCode)

	stored, err := repo.FindByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestAddItem_MergesQuantityForSameSKU(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, &fakeCache{})

	_, err := svc.AddItem(context.Background(), "tok-1", "WH-BLK", 2)
	require.NoError(t, err)
	snapshot, err := svc.AddItem(context.Background(), "tok-1", "WH-BLK", 3)
	require.NoError(t, err)

	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 5, snapshot.Items[0].Qty)
	assert.Equal(t, int64(29900*5), snapshot.Subtotal)
}

func TestAddItem_StockCheckAgainstMergedQuantity(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, &fakeCache{})

	_, err := svc.AddItem(context.Background(), "tok-1", "FW-40", 2)
	require.NoError(t, err)

	// 增量 1 件本身有库存，但合并后 3 > 2，必须拒绝且不写入
	_, err = svc.AddItem(context.Background(), "tok-1", "FW-40", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, err := repo.FindByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Qty)
}

func TestAddItem_Validation(t *testing.T) {
	svc := newTestCartService(newFakeCartRepo(), defaultCatalog(), &fakePromos{}, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, "tok-1", "WH-BLK", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, "tok-1", "NO-SUCH", 1)
	assert.ErrorIs(t, err, port.ErrVariantNotFound)

	_, err = svc.AddItem(ctx, "tok-1", "LS-GRY", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestUpdateItem_ZeroQuantityRemovesLine(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 2)
	require.NoError(t, err)

	snapshot, err := svc.UpdateItem(ctx, "tok-1", "WH-BLK", 0)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
	assert.Equal(t, int64(0), snapshot.Subtotal)
}

func TestUpdateItem_AbsoluteQuantityAndErrors(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 2)
	require.NoError(t, err)

	snapshot, err := svc.UpdateItem(ctx, "tok-1", "WH-BLK", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, snapshot.Items[0].Qty)

	_, err = svc.UpdateItem(ctx, "tok-1", "WH-BLK", 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.UpdateItem(ctx, "tok-1", "WH-BLK", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.UpdateItem(ctx, "tok-1", "FW-40", 1)
	assert.ErrorIs(t, err, domain.ErrLineItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 1)
	require.NoError(t, err)

	snapshot, err := svc.RemoveItem(ctx, "tok-1", "WH-BLK")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)

	_, err = svc.RemoveItem(ctx, "tok-1", "WH-BLK")
	assert.ErrorIs(t, err, domain.ErrLineItemNotFound)
}

func TestApplyPromo_PercentDiscount(t *testing.T) {
	repo := newFakeCartRepo()
	promos := &fakePromos{active: map[string]*port.ResolvedPromo{
		"WELCOME10": {Code: "WELCOME10", Discount: pricing.Discount{Kind: pricing.KindPercent, Value: decimal.NewFromInt(10)}},
	}}
	svc := newTestCartService(repo, defaultCatalog(), promos, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 1)
	require.NoError(t, err)

	snapshot, err := svc.ApplyPromo(ctx, "tok-1", "WELCOME10")
	require.NoError(t, err)
	require.NotNil(t, snapshot.PromoCode)
	assert.Equal(t, "WELCOME10", *snapshot.PromoCode)
	assert.Equal(t, int64(29900), snapshot.Subtotal)
	assert.Equal(t, int64(2990), snapshot.Discount)
	assert.Equal(t, int64(26910), snapshot.GrandTotal)
}

func TestApplyPromo_EmptyCartRejected(t *testing.T) {
	repo := newFakeCartRepo()
	require.NoError(t, repo.Create(context.Background(), domain.NewCart("cart-1", "tok-1")))
	promos := &fakePromos{active: map[string]*port.ResolvedPromo{
		"WELCOME10": {Code: "WELCOME10", Discount: pricing.Discount{Kind: pricing.KindPercent, Value: decimal.NewFromInt(10)}},
	}}
	svc := newTestCartService(repo, defaultCatalog(), promos, &fakeCache{})

	_, err := svc.ApplyPromo(context.Background(), "tok-1", "WELCOME10")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestApplyPromo_UnknownOrExpiredCode(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 1)
	require.NoError(t, err)

	_, err = svc.ApplyPromo(ctx, "tok-1", "GONE")
	assert.ErrorIs(t, err, port.ErrPromoNotFound)
}

func TestRemovePromo_ClearsStoredCode(t *testing.T) {
	repo := newFakeCartRepo()
	promos := &fakePromos{active: map[string]*port.ResolvedPromo{
		"WELCOME10": {Code: "WELCOME10", Discount: pricing.Discount{Kind: pricing.KindPercent, Value: decimal.NewFromInt(10)}},
	}}
	svc := newTestCartService(repo, defaultCatalog(), promos, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 1)
	require.NoError(t, err)
	_, err = svc.ApplyPromo(ctx, "tok-1", "WELCOME10")
	require.NoError(t, err)

	snapshot, err := svc.RemovePromo(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, snapshot.PromoCode)
	assert.Equal(t, int64(0), snapshot.Discount)

	// 没有促销码时再次移除也不报错
	_, err = svc.RemovePromo(ctx, "tok-1")
	assert.NoError(t, err)
}

func TestGetCart_ExpiredStoredPromoShownAsZeroDiscount(t *testing.T) {
	repo := newFakeCartRepo()
	promos := &fakePromos{active: map[string]*port.ResolvedPromo{
		"WELCOME10": {Code: "WELCOME10", Discount: pricing.Discount{Kind: pricing.KindPercent, Value: decimal.NewFromInt(10)}},
	}}
	svc := newTestCartService(repo, defaultCatalog(), promos, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 1)
	require.NoError(t, err)
	_, err = svc.ApplyPromo(ctx, "tok-1", "WELCOME10")
	require.NoError(t, err)

	// 促销随后过期：展示折扣归零，但存储的码保留
	promos.active = map[string]*port.ResolvedPromo{}

	snapshot, err := svc.GetCart(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, snapshot.PromoCode)
	assert.Equal(t, "WELCOME10", *snapshot.PromoCode)
	assert.Equal(t, int64(0), snapshot.Discount)
	assert.Equal(t, snapshot.Subtotal, snapshot.GrandTotal)
}

func TestGetCart_UnknownToken(t *testing.T) {
	svc := newTestCartService(newFakeCartRepo(), defaultCatalog(), &fakePromos{}, &fakeCache{})

	_, err := svc.GetCart(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestResolveToken(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, &fakeCache{})
	ctx := context.Background()

	// 空 token：铸造新 token 并开卡
	token, created, err := svc.ResolveToken(ctx, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, token)

	// 已知 token：原样返回
	same, created, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, token, same)

	// 未知 token：不复用客户端提供的值，重新铸造
	fresh, created, err := svc.ResolveToken(ctx, "stale-token")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, "stale-token", fresh)
}

func TestWriteOperationsInvalidateCache(t *testing.T) {
	repo := newFakeCartRepo()
	cache := &fakeCache{}
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, cache)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 1)
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, "tok-1", "WH-BLK", 2)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, "tok-1", "WH-BLK")
	require.NoError(t, err)

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Equal(t, 3, cache.deletes)
}

func TestUpdateItem_CatalogOutagePropagates(t *testing.T) {
	repo := newFakeCartRepo()
	catalog := defaultCatalog()
	svc := newTestCartService(repo, catalog, &fakePromos{}, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 2)
	require.NoError(t, err)

	// 目录侧基础设施故障必须原样透出，不能伪装成库存不足
	catalog.err = assert.AnError
	_, err = svc.UpdateItem(ctx, "tok-1", "WH-BLK", 3)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestUpdateItem_DelistedVariantTreatedAsOutOfStock(t *testing.T) {
	repo := newFakeCartRepo()
	catalog := defaultCatalog()
	svc := newTestCartService(repo, catalog, &fakePromos{}, &fakeCache{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok-1", "WH-BLK", 2)
	require.NoError(t, err)

	// 商品随后下架：当前数量不可满足，对调用方等同库存不足
	delete(catalog.variants, "WH-BLK")
	_, err = svc.UpdateItem(ctx, "tok-1", "WH-BLK", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCacheBackfillContextIsBounded(t *testing.T) {
	repo := newFakeCartRepo()
	cache := &fakeCache{}
	svc := newTestCartService(repo, defaultCatalog(), &fakePromos{}, cache)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewCart("cart-1", "tok-1")))

	_, err := svc.GetCart(ctx, "tok-1")
	require.NoError(t, err)

	// 回填是异步的，等它发生后检查 ctx 带了超时
	assert.Eventually(t, func() bool {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		return cache.sets > 0
	}, time.Second, 10*time.Millisecond)

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.True(t, cache.setBounded)
}
