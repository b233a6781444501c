package router

import (
	"github.com/bakemart/backend/internal/application"
	"github.com/bakemart/backend/internal/container"
	pginfra "github.com/bakemart/backend/internal/infrastructure/postgres"
	handlers "github.com/bakemart/backend/internal/interface/http"
	"github.com/bakemart/backend/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Call once during startup, after container.Set* wiring.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	store := container.GetSessionStore()
	notifier := container.GetNotifier()
	routes := application.DefaultRoutes()

	guard := application.NewGuard(store)

	profiles := pginfra.NewProfileRepository(pool)
	products := pginfra.NewProductRepository(pool)
	orders := pginfra.NewOrderRepository(pool)
	ratings := pginfra.NewRatingRepository(pool)

	profileSvc := application.NewProfileService(guard, profiles, store, notifier, logger)
	registerSvc := application.NewRegisterService(profiles, notifier, logger)
	productSvc := application.NewProductService(guard, products, notifier, logger,
		container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESProductsIndex)
	orderSvc := application.NewOrderService(guard, orders, notifier, logger, routes)
	ratingSvc := application.NewRatingService(guard, ratings, notifier, logger)
	adminSvc := application.NewAdminService(guard, profiles, notifier, logger)

	authCtrl := container.GetAuthController()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(
		authCtrl, registerSvc, store, logger, cfg.CookieDomain, cfg.CookieSecure,
	)))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(productSvc, routes.Login)))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, ratingSvc, routes.Login)))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, routes.Login)))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, routes.Login)))
	r.Add(modules.NewDebugModule())
}
