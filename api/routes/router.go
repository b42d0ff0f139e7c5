package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trovekart/storefront-backend/api/controllers"
	"github.com/trovekart/storefront-backend/api/middleware"
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
	"github.com/trovekart/storefront-backend/pkg/razorpay"
	"github.com/trovekart/storefront-backend/pkg/redis"
	"github.com/trovekart/storefront-backend/pkg/storage/gcs"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Services groups the wired application services the router exposes.
type Services struct {
	Auth     auth.Service
	OTP      otp.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Address  addresses.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
	Refunds  refunds.Service
	Banners  banners.Service
	Policies policies.Service
	Contact  contact.Service
	Media    media.Service
	Users    users.Repository
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gcsClient gcs.Pinger,
	sessions sessionManager,
	razorpayClient *razorpay.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthLimit.LoginWindow,
		cfg.AuthLimit.LoginIPLimit,
		cfg.AuthLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    dbP,
			"redis": redisClient,
			"gcs":   gcsClient,
		}))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/products", controllers.PublicListProducts(svcs.Catalog, logg))
		r.Get("/products/{productId}", controllers.PublicGetProduct(svcs.Catalog, logg))
		r.Get("/categories", controllers.PublicListCategories(svcs.Catalog, logg))
		r.Get("/banners", controllers.BannerList(svcs.Banners, logg))
		r.Get("/policies", controllers.PolicyList(svcs.Policies, logg))
		r.Get("/policies/{slug}", controllers.PolicyGet(svcs.Policies, logg))
		r.Post("/contact", controllers.ContactSubmit(svcs.Contact, logg))

		r.Route("/otp", func(r chi.Router) {
			r.Post("/send", controllers.OTPSend(svcs.OTP, logg))
			r.Post("/verify", controllers.OTPVerify(svcs.Auth, logg))
		})
		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
		})
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/admin/login", controllers.AdminAuthLogin(svcs.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Put("/items/{productId}", controllers.CartSetQuantity(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, logg))
		})
		r.Route("/v1/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(svcs.Address, logg))
			r.Post("/", controllers.AddressCreate(svcs.Address, logg))
			r.Put("/{addressId}", controllers.AddressUpdate(svcs.Address, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(svcs.Address, logg))
		})
		r.Post("/v1/checkout", controllers.Checkout(svcs.Checkout, logg))
		r.Post("/v1/payments/intent", controllers.PaymentIntent(razorpayClient, cfg.Razorpay.Currency, logg))
		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
		})
		r.Route("/v1/refunds", func(r chi.Router) {
			r.Get("/", controllers.RefundList(svcs.Refunds, logg))
			r.Post("/", controllers.RefundCreate(svcs.Refunds, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/v1/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(svcs.Catalog, logg))
			r.Post("/", controllers.AdminCreateProduct(svcs.Catalog, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(svcs.Catalog, logg))
		})
		r.Route("/v1/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCategory(svcs.Catalog, logg))
			r.Put("/{categoryId}", controllers.AdminRenameCategory(svcs.Catalog, logg))
			r.Delete("/{categoryId}", controllers.AdminDeleteCategory(svcs.Catalog, logg))
		})
		r.Route("/v1/banners", func(r chi.Router) {
			r.Post("/", controllers.AdminBannerCreate(svcs.Banners, logg))
			r.Put("/{bannerId}", controllers.AdminBannerUpdate(svcs.Banners, logg))
			r.Delete("/{bannerId}", controllers.AdminBannerDelete(svcs.Banners, logg))
		})
		r.Put("/v1/policies/{slug}", controllers.AdminPolicyUpsert(svcs.Policies, logg))
		r.Get("/v1/contacts", controllers.AdminContactList(svcs.Contact, logg))
		r.Get("/v1/users", controllers.AdminUserList(svcs.Users, logg))
		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderStatus(svcs.Orders, logg))
		})
		r.Route("/v1/refunds", func(r chi.Router) {
			r.Get("/", controllers.AdminRefundList(svcs.Refunds, logg))
			r.Post("/{refundId}/decision", controllers.AdminRefundDecision(svcs.Refunds, logg))
		})
		r.Post("/v1/media", controllers.AdminMediaUpload(svcs.Media, logg))
	})

	return r
}
