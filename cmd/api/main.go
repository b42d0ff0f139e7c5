package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/trovekart/storefront-backend/api/routes"
	"github.com/trovekart/storefront-backend/internal/addresses"
	"github.com/trovekart/storefront-backend/internal/auth"
	"github.com/trovekart/storefront-backend/internal/banners"
	"github.com/trovekart/storefront-backend/internal/cart"
	"github.com/trovekart/storefront-backend/internal/catalog"
	checkoutsvc "github.com/trovekart/storefront-backend/internal/checkout"
	"github.com/trovekart/storefront-backend/internal/contact"
	"github.com/trovekart/storefront-backend/internal/media"
	"github.com/trovekart/storefront-backend/internal/orders"
	"github.com/trovekart/storefront-backend/internal/otp"
	"github.com/trovekart/storefront-backend/internal/policies"
	"github.com/trovekart/storefront-backend/internal/refunds"
	"github.com/trovekart/storefront-backend/internal/users"
	"github.com/trovekart/storefront-backend/pkg/auth/session"
	"github.com/trovekart/storefront-backend/pkg/config"
	"github.com/trovekart/storefront-backend/pkg/db"
	"github.com/trovekart/storefront-backend/pkg/logger"
	"github.com/trovekart/storefront-backend/pkg/migrate"
	"github.com/trovekart/storefront-backend/pkg/outbox"
	"github.com/trovekart/storefront-backend/pkg/razorpay"
	"github.com/trovekart/storefront-backend/pkg/redis"
	"github.com/trovekart/storefront-backend/pkg/security"
	"github.com/trovekart/storefront-backend/pkg/sms"
	"github.com/trovekart/storefront-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing gcs client", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	smsClient, err := sms.New(cfg.SMS, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sms client", err)
		os.Exit(1)
	}

	// Razorpay is optional in dev environments without payment keys.
	razorpayClient, err := razorpay.New(cfg.Razorpay)
	if err != nil {
		logg.Warn(context.Background(), "razorpay not configured, payment intents disabled")
		razorpayClient = nil
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	usersRepo := users.NewRepository(dbClient.DB())

	if cfg.App.IsDev() && cfg.Bootstrap.AdminEmail != "" {
		if err := users.EnsureAdmin(context.Background(), usersRepo, cfg.Password, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, logg); err != nil {
			logg.Error(context.Background(), "failed to bootstrap admin account", err)
			os.Exit(1)
		}
	}
	cartRepo := cart.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	otpService, err := otp.NewService(otp.NewRepository(dbClient.DB()), smsClient, redisClient, cfg.OTP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create otp service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		OTP:            otpService,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		VerifyPassword: security.VerifyPassword,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, dbClient, outboxService, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	addressService, err := addresses.NewService(addresses.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(dbClient, cartRepo, ordersRepo, addressService, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	refundsService, err := refunds.NewService(refunds.NewRepository(dbClient.DB()), ordersRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create refunds service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, dbClient, outboxService, refundsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	bannersService, err := banners.NewService(banners.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create banners service", err)
		os.Exit(1)
	}

	policiesService, err := policies.NewService(policies.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create policies service", err)
		os.Exit(1)
	}

	contactService, err := contact.NewService(contact.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	mediaService, err := media.NewService(gcsClient.BucketHandle(cfg.GCS.BucketName), cfg.GCS, cfg.Media, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, gcsClient, sessionManager, razorpayClient, routes.Services{
			Auth:     authService,
			OTP:      otpService,
			Catalog:  catalogService,
			Cart:     cartService,
			Address:  addressService,
			Checkout: checkoutService,
			Orders:   ordersService,
			Refunds:  refundsService,
			Banners:  bannersService,
			Policies: policiesService,
			Contact:  contactService,
			Media:    mediaService,
			Users:    usersRepo,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
