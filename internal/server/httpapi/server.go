// Package httpapi exposes the storefront REST API over fiber.
package httpapi

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

// Services groups the business services the handlers call.
type Services struct {
	Users      *services.UserService
	Deliveries *services.DeliveryService
	Coupons    *services.CouponService
	Orders     *services.OrderService
	Products   *services.ProductService
}

type HTTPServer struct {
	address         string
	corsOrigin      string
	shutdownTimeout time.Duration

	app     *fiber.App
	logger  logging.Logger
	tokens  *auth.TokenIssuer
	svc     Services
	metrics *httpMetrics
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, tokens *auth.TokenIssuer, svc Services) *HTTPServer {
	s := &HTTPServer{
		address:         cfg.EndpointAddrHTTP,
		corsOrigin:      cfg.CORSOrigin,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          l.With("module", "http_server"),
		tokens:          tokens,
		svc:             svc,
		metrics:         newHTTPMetrics(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "storefront",
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})
	s.routes()

	return s
}

// App returns the underlying fiber application.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	// unblocks Listener if shutdown ran before it started serving
	_ = ln.Close()

	if err := <-errCh; err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
