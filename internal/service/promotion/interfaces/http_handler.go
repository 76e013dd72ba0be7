// internal/service/promotion/interfaces/http_handler.go
package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"storefront/internal/pkg/httpx"
	"storefront/internal/service/promotion/application"
	"storefront/internal/service/promotion/domain"
)

// PromotionHandler 封装了 promotion 服务的 HTTP 处理器
type PromotionHandler struct {
	service *application.PromotionService
}

// NewPromotionHandler 创建一个新的 HTTP 处理器实例
func NewPromotionHandler(service *application.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *PromotionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /promos", h.handleGetPromos)
	mux.HandleFunc("GET /promos/{id}", h.handleGetPromo)
	mux.HandleFunc("POST /promos", h.handleCreatePromo)
	mux.HandleFunc("PUT /promos/{id}", h.handleUpdatePromo)
	mux.HandleFunc("DELETE /promos/{id}", h.handleDeletePromo)
}

func (h *PromotionHandler) handleGetPromos(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	view, err := h.service.GetPromos(ctx, page, limit)
	if err != nil {
		writePromoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *PromotionHandler) handleGetPromo(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	view, err := h.service.GetPromoByID(ctx, r.PathValue("id"))
	if err != nil {
		writePromoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *PromotionHandler) handleCreatePromo(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	var req application.PromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.Code == "" {
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "code is required")
		return
	}

	view, err := h.service.CreatePromo(ctx, &req)
	if err != nil {
		writePromoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, view)
}

func (h *PromotionHandler) handleUpdatePromo(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	var req application.PromoUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	view, err := h.service.UpdatePromo(ctx, r.PathValue("id"), &req)
	if err != nil {
		writePromoError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *PromotionHandler) handleDeletePromo(w http.ResponseWriter, r *http.Request) {
	ctx := extractTraceContext(r)

	if err := h.service.DeletePromo(ctx, r.PathValue("id")); err != nil {
		writePromoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writePromoError 根据错误类型返回不同的 HTTP 状态码和错误码
func writePromoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPromoNotFound):
		httpx.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrPromoCodeExists):
		httpx.WriteError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidValue):
		httpx.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func extractTraceContext(r *http.Request) context.Context {
	propagator := otel.GetTextMapPropagator()
	return propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
}
