// cmd/storefront/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"storefront/internal/pkg/bootstrap"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/mq"
	"storefront/internal/pkg/seed"

	cartapp "storefront/internal/service/cart/application"
	cartinfra "storefront/internal/service/cart/infrastructure"
	cartadapter "storefront/internal/service/cart/infrastructure/adapter"
	cartiface "storefront/internal/service/cart/interfaces"

	catalogapp "storefront/internal/service/catalog/application"
	cataloginfra "storefront/internal/service/catalog/infrastructure"
	catalogadapter "storefront/internal/service/catalog/infrastructure/adapter"
	catalogiface "storefront/internal/service/catalog/interfaces"

	orderapp "storefront/internal/service/order/application"
	orderinfra "storefront/internal/service/order/infrastructure"
	orderadapter "storefront/internal/service/order/infrastructure/adapter"
	orderiface "storefront/internal/service/order/interfaces"

	promoapp "storefront/internal/service/promotion/application"
	promoinfra "storefront/internal/service/promotion/infrastructure"
	promoadapter "storefront/internal/service/promotion/infrastructure/adapter"
	promoiface "storefront/internal/service/promotion/interfaces"
)

// main 函数是应用的"组装根" (Composition Root)
// 它的核心职责是：创建并组装所有依赖项，然后启动应用。
func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Service.Name)

	// 存储层：MySQL (TranslateError 让方言错误统一成 gorm.ErrDuplicatedKey 等)
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}
	if err := db.AutoMigrate(
		&cataloginfra.ProductModel{}, &cataloginfra.VariantModel{},
		&promoinfra.PromoModel{},
		&cartinfra.CartModel{}, &cartinfra.CartItemModel{},
		&orderinfra.OrderModel{}, &orderinfra.OrderItemModel{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	orderWriter := mq.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic)

	tracer := otel.Tracer(cfg.Service.Name)

	// 仓储
	productRepo := cataloginfra.NewGormProductRepository(db)
	promoRepo := promoinfra.NewGormPromoRepository(db)
	cartRepo := cartinfra.NewGormCartRepository(db)
	orderRepo := orderinfra.NewGormOrderRepository(db)

	// 应用服务（跨上下文协作走 port + adapter，不直接引用对方实现）
	catalogService := catalogapp.NewCatalogService(productRepo, tracer)
	promoService := promoapp.NewPromotionService(promoRepo, tracer)
	cartService := cartapp.NewCartService(
		cartRepo,
		catalogadapter.NewCatalogLookupAdapter(productRepo),
		promoadapter.NewPromoLookupAdapter(promoRepo),
		cartadapter.NewRedisCartCache(redisClient),
		tracer,
	)
	orderEvents := orderadapter.NewOrderKafkaAdapter(orderWriter)
	orderService := orderapp.NewOrderService(
		orderRepo,
		orderadapter.NewCartSourceAdapter(cartRepo),
		orderadapter.NewPromoResolverAdapter(promoRepo),
		orderEvents,
		tracer,
	)

	if cfg.Seed {
		if err := seed.Run(context.Background(), productRepo, promoRepo); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName:    cfg.Service.Name,
		Port:           cfg.Service.Port,
		JaegerEndpoint: cfg.Jaeger.Endpoint,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			appCtx.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			appCtx.Mux.Handle("/metrics", promhttp.Handler())

			catalogiface.NewCatalogHandler(catalogService).RegisterRoutes(appCtx.Mux)
			promoiface.NewPromotionHandler(promoService).RegisterRoutes(appCtx.Mux)
			cartiface.NewCartHandler(cartService).RegisterRoutes(appCtx.Mux)
			orderiface.NewOrderHandler(orderService).RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			if err := orderEvents.Close(); err != nil {
				log.Printf("Error closing kafka writer: %v", err)
			}
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing redis client: %v", err)
			}
		},
	})
}
