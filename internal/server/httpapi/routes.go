package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/storefront/internal/common"
)

func (s *HTTPServer) routes() {
	s.app.Use(requestid.New())
	s.app.Use(s.observe)
	s.app.Use(recover.New())
	s.app.Use(cors.New(s.corsConfig()))
	s.app.Use(securityHeaders)

	s.app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	users := s.app.Group("/users")
	users.Post("/register", s.register)
	users.Post("/login", s.login)
	users.Get("/profile", s.requireBearer, s.profile)
	users.Get("/email", s.listEmails)
	users.Get("/singleUserData", s.singleUserData)
	users.Post("/find", s.findUser)

	s.app.Put("/updateInformation", s.updateInformation)
	s.app.Get("/getDeliverInfo", s.getDeliverInfo)
	s.app.Put("/deliverInfo/:id", s.updateDeliverInfo)

	s.app.Get("/coupon", s.listCoupons)
	s.app.Get("/coupon/:code", s.getCoupon)

	orders := s.app.Group("/orders")
	orders.Get("/details/:purchaseID", s.orderDetails)
	orders.Get("/isReviewed/:purchaseID", s.orderIsReviewed)
	orders.Get("/:userId", s.userOrders)

	s.app.Get("/categories", s.listCategories)
	s.app.Get("/categories/:category/products", s.categoryProducts)
	s.app.Get("/products/:productId", s.getProduct)
}

// corsConfig allows credentials unless the origin is a wildcard, which
// browsers and fiber both reject.
func (s *HTTPServer) corsConfig() cors.Config {
	origin := strings.TrimSpace(s.corsOrigin)
	if origin == "" {
		origin = "*"
	}

	return cors.Config{
		AllowOrigins:     origin,
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept," + common.AuthorizationHeaderName + "," + common.UserIDHeaderName,
		AllowCredentials: origin != "*",
	}
}
