// internal/service/promotion/application/service.go
package application

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/pagination"
	"storefront/internal/pricing"
	"storefront/internal/service/promotion/domain"
)

// PromotionService 提供促销规则的管理用例。
// 促销码只有唯一性这一条不变量，其余均为 CRUD。
type PromotionService struct {
	promoRepo domain.PromoRepository
	tracer    trace.Tracer
}

// NewPromotionService 创建一个新的促销服务实例。
func NewPromotionService(repo domain.PromoRepository, tracer trace.Tracer) *PromotionService {
	return &PromotionService{promoRepo: repo, tracer: tracer}
}

// GetPromos 按创建时间倒序分页返回促销规则。
func (s *PromotionService) GetPromos(ctx context.Context, page, limit int) (*PromoListView, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.GetPromos")
	defer span.End()

	page, limit = pagination.Normalize(page, limit)
	promos, total, err := s.promoRepo.List(ctx, pagination.Offset(page, limit), limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	views := make([]*PromoView, len(promos))
	for i, p := range promos {
		views[i] = toView(p)
	}
	return &PromoListView{Promos: views, Pagination: pagination.New(page, limit, total)}, nil
}

// GetPromoByID 按 ID 查找促销。
func (s *PromotionService) GetPromoByID(ctx context.Context, id string) (*PromoView, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.GetPromoByID")
	defer span.End()
	span.SetAttributes(attribute.String("promo.id", id))

	promo, err := s.promoRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(promo), nil
}

// GetPromoByCode 按促销码查找促销，不关心有效窗口。
func (s *PromotionService) GetPromoByCode(ctx context.Context, code string) (*PromoView, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.GetPromoByCode")
	defer span.End()
	span.SetAttributes(attribute.String("promo.code", code))

	promo, err := s.promoRepo.FindByCode(ctx, domain.NormalizeCode(code))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(promo), nil
}

// CreatePromo 创建一条促销规则；促销码重复返回 ErrPromoCodeExists。
func (s *PromotionService) CreatePromo(ctx context.Context, req *PromoRequest) (*PromoView, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.CreatePromo")
	defer span.End()
	span.SetAttributes(attribute.String("promo.code", req.Code))

	promo, err := domain.NewPromo(uuid.NewString(), req.Code, pricing.DiscountKind(req.Kind), req.Value, req.StartsAt, req.EndsAt, req.Active)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 先查重再写入；存储层的唯一索引兜底并发下的重复
	if _, err := s.promoRepo.FindByCode(ctx, promo.Code); err == nil {
		return nil, domain.ErrPromoCodeExists
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Ctx(ctx).Info().Str("code", promo.Code).Msg("promo created")
	return toView(promo), nil
}

// UpdatePromo 更新促销规则；改码时检查新码唯一性。
func (s *PromotionService) UpdatePromo(ctx context.Context, id string, req *PromoUpdateRequest) (*PromoView, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.UpdatePromo")
	defer span.End()
	span.SetAttributes(attribute.String("promo.id", id))

	promo, err := s.promoRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if req.Code != nil {
		newCode := domain.NormalizeCode(*req.Code)
		if newCode != promo.Code {
			if _, err := s.promoRepo.FindByCode(ctx, newCode); err == nil {
				return nil, domain.ErrPromoCodeExists
			}
			promo.Code = newCode
		}
	}
	if req.Kind != nil {
		promo.Kind = pricing.DiscountKind(*req.Kind)
	}
	if req.Value != nil {
		promo.Value = *req.Value
	}
	if req.StartsAt != nil {
		promo.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		promo.EndsAt = *req.EndsAt
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}

	// 重走工厂校验，防止 PATCH 把规则改成非法组合
	if _, err := domain.NewPromo(promo.ID, promo.Code, promo.Kind, promo.Value, promo.StartsAt, promo.EndsAt, promo.Active); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.promoRepo.Update(ctx, promo); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toView(promo), nil
}

// DeletePromo 删除促销规则。
func (s *PromotionService) DeletePromo(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "promotion.DeletePromo")
	defer span.End()
	span.SetAttributes(attribute.String("promo.id", id))

	if _, err := s.promoRepo.FindByID(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	return s.promoRepo.Delete(ctx, id)
}
