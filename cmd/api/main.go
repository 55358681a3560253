package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/session"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Order{},
		&model.Admin{},
		&model.AuditLog{},
	); err != nil {
		log.Error("migrate", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	adminRepo := infraRepo.NewAdminGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//管理者が1人もいなければ環境変数から作る
	if err := bootstrapAdmin(ctx, log, adminRepo, cfg); err != nil {
		log.Error("bootstrap admin", "error", err)
		os.Exit(1)
	}

	//セッションストア（REDIS_ADDRがあればRedis、無ければインメモリ）
	sessionStore, closeStore, err := newSessionStore(ctx, log, cfg)
	if err != nil {
		log.Error("session store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	//Usecase生成
	authValidator := validator.NewAuthValidator()
	authUC := usecase.NewAuthUsecase(customerRepo, sessionStore, authValidator, cfg.SessionTTL)
	adminAuthUC := usecase.NewAdminAuthUsecase(adminRepo, sessionStore, cfg.SessionTTL)
	productUC := usecase.NewProductUsecase(productRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(productRepo, sessionStore)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, sessionStore)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, auditRepo)
	dashboardUC := usecase.NewAdminDashboardUsecase(customerRepo, productRepo, orderRepo, auditRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC, cfg.SessionSecret, cfg.CookieSecure),
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminAuth:    handler.NewAdminAuthHandler(adminAuthUC, dashboardUC, cfg.SessionSecret, cfg.CookieSecure),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
	}

	e := server.New(cfg, sessionStore, handlers)

	addr := ":" + cfg.Port

	go func() {
		log.Info("server started", "addr", addr)
		if err := server.Start(e, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx, e); err != nil {
		log.Error("shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// 初回起動時の管理者作成。既に1人でもいれば何もしない。
func bootstrapAdmin(ctx context.Context, log *slog.Logger, admins repo.AdminRepository, cfg config.Config) error {
	count, err := admins.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Warn("no admin exists and ADMIN_PASSWORD is empty; skipping bootstrap")
		return nil
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.Admin{
		Username:     cfg.AdminUsername,
		PasswordHash: string(pwHash),
	}
	if err := admins.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("admin bootstrapped", "username", cfg.AdminUsername)
	return nil
}

func newSessionStore(ctx context.Context, log *slog.Logger, cfg config.Config) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		st := session.NewMemoryStore()
		log.Info("using in-memory session store")
		return st, st.Close, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	log.Info("using redis session store", "addr", cfg.RedisAddr)
	return session.NewRedisStore(client), func() { _ = client.Close() }, nil
}
