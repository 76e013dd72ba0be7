// internal/service/cart/interfaces/http_handler.go
package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"storefront/internal/pkg/httpx"
	"storefront/internal/service/cart/application"
	"storefront/internal/service/cart/domain"
	"storefront/internal/service/cart/domain/port"
)

// CartHandler 封装了 cart 服务的 HTTP 处理器
type CartHandler struct {
	service *application.CartService
}

// NewCartHandler 创建一个新的 HTTP 处理器实例
func NewCartHandler(service *application.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
// 所有路由都经过令牌中间件，匿名客户端首次访问即获得购物车令牌。
func (h *CartHandler) RegisterRoutes(mux *http.ServeMux) {
	wrap := func(fn http.HandlerFunc) http.Handler {
		return CartTokenMiddleware(h.service, fn)
	}
	mux.Handle("GET /cart", wrap(h.handleGetCart))
	mux.Handle("POST /cart/items", wrap(h.handleAddItem))
	mux.Handle("PUT /cart/items/{sku}", wrap(h.handleUpdateItem))
	mux.Handle("DELETE /cart/items/{sku}", wrap(h.handleRemoveItem))
	mux.Handle("POST /cart/promo", wrap(h.handleApplyPromo))
	mux.Handle("DELETE /cart/promo", wrap(h.handleRemovePromo))
}

type addItemRequest struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

type updateItemRequest struct {
	Qty int `json:"qty"`
}

type applyPromoRequest struct {
	Code string `json:"code"`
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	snapshot, err := h.service.GetCart(ctx, TokenFromContext(ctx))
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.SKU == "" {
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "sku is required")
		return
	}

	snapshot, err := h.service.AddItem(ctx, TokenFromContext(ctx), req.SKU, req.Qty)
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	snapshot, err := h.service.UpdateItem(ctx, TokenFromContext(ctx), r.PathValue("sku"), req.Qty)
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	snapshot, err := h.service.RemoveItem(ctx, TokenFromContext(ctx), r.PathValue("sku"))
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) handleApplyPromo(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	var req applyPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.Code == "" {
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "promo code is required")
		return
	}

	snapshot, err := h.service.ApplyPromo(ctx, TokenFromContext(ctx), req.Code)
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) handleRemovePromo(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	snapshot, err := h.service.RemovePromo(ctx, TokenFromContext(ctx))
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snapshot)
}

// writeCartError 根据错误类型返回不同的 HTTP 状态码和错误码
func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrLineItemNotFound),
		errors.Is(err, port.ErrVariantNotFound),
		errors.Is(err, port.ErrPromoNotFound):
		httpx.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrEmptyCart):
		httpx.WriteError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

// extractTraceContext 从请求头中提取上游链路追踪上下文
func extractTraceContext(r *http.Request) context.Context {
	propagator := otel.GetTextMapPropagator()
	return propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
}
