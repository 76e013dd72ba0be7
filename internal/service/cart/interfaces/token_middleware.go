// internal/service/cart/interfaces/token_middleware.go
package interfaces

import (
	"context"
	"net/http"

	"storefront/internal/pkg/httpx"
	"storefront/internal/pkg/logger"
	"storefront/internal/service/cart/application"
)

// cartTokenHeader 和 cartTokenCookie 是购物车令牌的两种携带方式，
// header 优先于 cookie。
const (
	cartTokenHeader = "X-Cart-Token"
	cartTokenCookie = "cartToken"
)

type tokenCtxKey struct{}

// CartTokenMiddleware 为每个请求解析（或签发）匿名购物车令牌。
// 新签发的令牌同时通过响应头和 cookie 回写给客户端。
func CartTokenMiddleware(service *application.CartService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(cartTokenHeader)
		if token == "" {
			if c, err := r.Cookie(cartTokenCookie); err == nil {
				token = c.Value
			}
		}

		resolved, created, err := service.ResolveToken(r.Context(), token)
		if err != nil {
			logger.Ctx(r.Context()).Error().Err(err).Msg("failed to resolve cart token")
			httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to resolve cart token")
			return
		}

		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     cartTokenCookie,
				Value:    resolved,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(cartTokenHeader, resolved)

		ctx := context.WithValue(r.Context(), tokenCtxKey{}, resolved)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext 取出中间件解析出的购物车令牌。
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}
