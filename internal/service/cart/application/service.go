// internal/service/cart/application/service.go
package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"storefront/internal/pkg/logger"
	"storefront/internal/pricing"
	"storefront/internal/service/cart/domain"
	"storefront/internal/service/cart/domain/port"
)

// CartService 是购物车聚合的应用服务。
// 所有库存检查都是读取时刻的参考值而非预占；同一 SKU 上的
// 并发加购可能联合超卖，这是本系统明确接受的取舍。
type CartService struct {
	cartRepo domain.CartRepository
	catalog  port.CatalogLookup
	promos   port.PromoLookup
	cache    port.CartCache
	tracer   trace.Tracer
	now      func() time.Time
	sfg      singleflight.Group // 合并同一 token 上并发的缓存未命中回源
}

// NewCartService 创建一个新的购物车服务实例。
func NewCartService(cartRepo domain.CartRepository, catalog port.CatalogLookup, promos port.PromoLookup, cache port.CartCache, tracer trace.Tracer) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		catalog:  catalog,
		promos:   promos,
		cache:    cache,
		tracer:   tracer,
		now:      time.Now,
	}
}

// GetCart 加载购物车并返回重新定价后的快照。
// 存储的促销码会按当前时刻重新解析，展示值反映促销的实时有效性；
// 但存储的码本身不会被修正，结账以存储的码为准。
func (s *CartService) GetCart(ctx context.Context, token string) (*CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "cart.GetCart")
	defer span.End()

	cart, err := s.loadByToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.priced(ctx, cart), nil
}

// AddItem 向购物车加入 qty 件 sku。
// 同 SKU 的行合并数量，库存检查针对合并后的总量而非增量。
// token 合法但无购物车记录时惰性创建。
func (s *CartService) AddItem(ctx context.Context, token, sku string, qty int) (*CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "cart.AddItem")
	defer span.End()
	span.SetAttributes(attribute.String("cart.sku", sku), attribute.Int("cart.qty", qty))

	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	variant, err := s.catalog.FindBySKU(ctx, sku)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if variant.Stock < qty {
		return nil, domain.ErrInsufficientStock
	}

	cart, err := s.cartRepo.FindByToken(ctx, token)
	if errors.Is(err, domain.ErrCartNotFound) {
		// token 通常由中间件预先开卡，这里兜底惰性创建
		cart = domain.NewCart(uuid.NewString(), token)
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			span.RecordError(err)
			return nil, err
		}
	} else if err != nil {
		span.RecordError(err)
		return nil, err
	}

	line := domain.LineItem{
		SKU:       variant.SKU,
		Title:     variant.Title,
		UnitPrice: variant.UnitPrice,
		Currency:  variant.Currency,
		Qty:       qty,
	}
	if existing, ok := cart.FindItem(sku); ok {
		merged := existing.Qty + qty
		if variant.Stock < merged {
			// 检查失败时不写入合并后的数量
			return nil, domain.ErrInsufficientStock
		}
		line.Qty = merged
	}

	if err := s.cartRepo.UpsertItem(ctx, cart.ID, line); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.invalidate(token)
	return s.GetCart(ctx, token)
}

// UpdateItem 把行项目的数量设置为绝对值 qty。
// qty == 0 是设计好的删除路径；qty > 0 时按绝对量重查库存。
func (s *CartService) UpdateItem(ctx context.Context, token, sku string, qty int) (*CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "cart.UpdateItem")
	defer span.End()
	span.SetAttributes(attribute.String("cart.sku", sku), attribute.Int("cart.qty", qty))

	if qty < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	cart, err := s.cartRepo.FindByToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	item, ok := cart.FindItem(sku)
	if !ok {
		return nil, domain.ErrLineItemNotFound
	}

	if qty == 0 {
		if err := s.cartRepo.DeleteItem(ctx, cart.ID, sku); err != nil {
			span.RecordError(err)
			return nil, err
		}
	} else {
		variant, err := s.catalog.FindBySKU(ctx, sku)
		if errors.Is(err, port.ErrVariantNotFound) {
			// 商品下架与库存不足对调用方同义：当前数量不可满足
			return nil, domain.ErrInsufficientStock
		} else if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if variant.Stock < qty {
			return nil, domain.ErrInsufficientStock
		}
		item.Qty = qty
		if err := s.cartRepo.UpsertItem(ctx, cart.ID, *item); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	s.invalidate(token)
	return s.GetCart(ctx, token)
}

// RemoveItem 无条件删除一行。
func (s *CartService) RemoveItem(ctx context.Context, token, sku string) (*CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "cart.RemoveItem")
	defer span.End()
	span.SetAttributes(attribute.String("cart.sku", sku))

	cart, err := s.cartRepo.FindByToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if _, ok := cart.FindItem(sku); !ok {
		return nil, domain.ErrLineItemNotFound
	}

	if err := s.cartRepo.DeleteItem(ctx, cart.ID, sku); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.invalidate(token)
	return s.GetCart(ctx, token)
}

// ApplyPromo 把一个当前有效的促销码存入购物车。
// 重复应用是幂等替换，直接覆盖之前的码，不报错。
func (s *CartService) ApplyPromo(ctx context.Context, token, code string) (*CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "cart.ApplyPromo")
	defer span.End()
	span.SetAttributes(attribute.String("promo.code", code))

	resolved, err := s.promos.FindActiveByCode(ctx, code, s.now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	cart, err := s.cartRepo.FindByToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	if err := s.cartRepo.SavePromoCode(ctx, cart.ID, resolved.Code); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.invalidate(token)
	return s.GetCart(ctx, token)
}

// RemovePromo 清除存储的促销码；没有促销码时也不报错。
func (s *CartService) RemovePromo(ctx context.Context, token string) (*CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "cart.RemovePromo")
	defer span.End()

	cart, err := s.cartRepo.FindByToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.cartRepo.SavePromoCode(ctx, cart.ID, ""); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.invalidate(token)
	return s.GetCart(ctx, token)
}

// ResolveToken 为 HTTP 中间件服务：token 为空或不存在时
// 铸造新 token 并开卡，返回 (token, 是否新建)。
func (s *CartService) ResolveToken(ctx context.Context, token string) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "cart.ResolveToken")
	defer span.End()

	if token != "" {
		if _, err := s.cartRepo.FindByToken(ctx, token); err == nil {
			return token, false, nil
		} else if !errors.Is(err, domain.ErrCartNotFound) {
			span.RecordError(err)
			return "", false, err
		}
	}

	fresh := domain.NewCart(uuid.NewString(), uuid.NewString())
	if err := s.cartRepo.Create(ctx, fresh); err != nil {
		span.RecordError(err)
		return "", false, err
	}
	return fresh.Token, true, nil
}

// loadByToken 走 读缓存 → singleflight 回源 → 异步回填 的读路径。
func (s *CartService) loadByToken(ctx context.Context, token string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(token, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, token)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, port.ErrCacheMiss) {
			logger.Ctx(ctx).Warn().Err(err).Msg("cart cache get failed")
		}

		cart, err = s.cartRepo.FindByToken(ctx, token)
		if err != nil {
			return nil, err
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, token, cart); err != nil {
				logger.Ctx(ctx).Warn().Err(err).Msg("cart cache set failed")
			}
		}()
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// priced 对购物车重新定价并生成快照。
// 促销解析失败（过期、停用、误存）时按零折扣展示，不报错。
func (s *CartService) priced(ctx context.Context, cart *domain.Cart) *CartSnapshot {
	var discount *pricing.Discount
	if cart.PromoCode != "" {
		if resolved, err := s.promos.FindActiveByCode(ctx, cart.PromoCode, s.now()); err == nil {
			discount = &resolved.Discount
		}
	}
	return toSnapshot(cart, pricing.Price(cart.Lines(), discount))
}

// invalidate 在每次写操作后清除快照缓存。
// 缓存失效失败只记日志：下一次读会以 last-writer-wins 方式自愈。
func (s *CartService) invalidate(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, token); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("token", token).Msg("cart cache invalidate failed")
	}
}
