// internal/service/order/application/service.go
package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/pagination"
	"storefront/internal/pricing"
	"storefront/internal/service/order/domain"
	"storefront/internal/service/order/domain/port"
)

// OrderService 是结账与订单聚合的应用服务。
// 结账的幂等性不依赖进程内锁：cart_id 唯一约束是唯一的
// 并发保障，宿主可以多进程部署。
type OrderService struct {
	orderRepo domain.OrderRepository
	carts     port.CartSource
	promos    port.PromoResolver
	events    port.EventProducer
	tracer    trace.Tracer
	now       func() time.Time
}

// NewOrderService 创建一个新的订单服务实例。
func NewOrderService(orderRepo domain.OrderRepository, carts port.CartSource, promos port.PromoResolver, events port.EventProducer, tracer trace.Tracer) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		carts:     carts,
		promos:    promos,
		events:    events,
		tracer:    tracer,
		now:       time.Now,
	}
}

// CreateOrder 把购物车固化为订单，以 cartID 为幂等键：
// 同一购物车的重复结账总是返回第一次生成的订单，购物车
// 之后的变更不会触发重算。
func (s *OrderService) CreateOrder(ctx context.Context, cartID string) (*OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "order.CreateOrder")
	defer span.End()
	span.SetAttributes(attribute.String("cart.id", cartID))

	// 1. 幂等检查：该购物车已有订单则原样返回，不重算、不报错
	if existing, err := s.orderRepo.FindByCartID(ctx, cartID); err == nil {
		span.AddEvent("idempotent replay: order already exists for cart")
		return toView(existing), nil
	} else if !errors.Is(err, domain.ErrOrderNotFound) {
		span.RecordError(err)
		return nil, err
	}

	// 2. 加载购物车
	cart, err := s.carts.Load(ctx, cartID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// 3. 对存储的促销码做实时重验。历史上已接受的码如果此刻
	// 过期或停用，折扣静默归零而不是拒绝结账：购物车当初的
	// 接受不在结账时重新裁决。
	var discount *pricing.Discount
	if cart.PromoCode != "" {
		if resolved, err := s.promos.Resolve(ctx, cart.PromoCode, s.now()); err == nil {
			discount = &resolved.Discount
		} else if !errors.Is(err, port.ErrPromoNotFound) {
			span.RecordError(err)
			return nil, err
		}
	}

	// 4. 定价并固化行快照
	lines := make([]pricing.Line, len(cart.Items))
	items := make([]domain.LineItem, len(cart.Items))
	for i, ci := range cart.Items {
		lines[i] = pricing.Line{UnitPrice: ci.UnitPrice, Qty: ci.Qty}
		items[i] = domain.LineItem{
			SKU:       ci.SKU,
			Title:     ci.Title,
			UnitPrice: ci.UnitPrice,
			Currency:  ci.Currency,
			Qty:       ci.Qty,
			LineTotal: ci.UnitPrice * int64(ci.Qty),
		}
	}
	totals := pricing.Price(lines, discount)

	order, err := domain.NewOrder(uuid.NewString(), cart.ID, cart.PromoCode, totals, items)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 5. 原子持久化。与并发结账竞争失败时，唯一约束拒绝后来者，
	// 此时回读胜者的订单返回，绝不把冲突当作用户错误。
	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrDuplicateCart) {
			span.AddEvent("lost create race, returning winner's order")
			winner, err := s.orderRepo.FindByCartID(ctx, cartID)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			return toView(winner), nil
		}
		span.RecordError(err)
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("order_id", order.ID).
		Str("cart_id", order.CartID).
		Int64("grand_total", order.GrandTotal).
		Msg("order created")

	// 6. 事件发布尽力而为，失败不回滚订单
	if s.events != nil {
		if err := s.events.OrderCreated(ctx, order); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order created event")
		}
	}

	return toView(order), nil
}

// GetOrders 按创建时间倒序分页返回订单。
func (s *OrderService) GetOrders(ctx context.Context, page, limit int) (*OrderListView, error) {
	ctx, span := s.tracer.Start(ctx, "order.GetOrders")
	defer span.End()

	page, limit = pagination.Normalize(page, limit)
	orders, err := s.orderRepo.List(ctx, pagination.Offset(page, limit), limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = toView(o)
	}
	return &OrderListView{Orders: views, Pagination: pagination.New(page, limit, total)}, nil
}

// GetOrderByID 按 ID 查找订单。
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "order.GetOrderByID")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id))

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(order), nil
}

// GetOrderByCartID 按来源购物车查找订单。
func (s *OrderService) GetOrderByCartID(ctx context.Context, cartID string) (*OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "order.GetOrderByCartID")
	defer span.End()
	span.SetAttributes(attribute.String("cart.id", cartID))

	order, err := s.orderRepo.FindByCartID(ctx, cartID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(order), nil
}

// UpdateOrderStatus 变更订单状态。状态取值必须在白名单内，
// 但不限制流转方向。
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status string) (*OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "order.UpdateOrderStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id), attribute.String("order.status", status))

	next := domain.Status(status)
	if !domain.ValidStatus(next) {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, next); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 回读而不是就地改字段，让响应携带存储层更新后的时间戳
	updated, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(updated), nil
}
