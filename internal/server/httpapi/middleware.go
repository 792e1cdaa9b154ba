package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
)

// requireBearer guards protected routes. A missing header, another scheme or
// an empty token is common.ErrMissingToken, a token that fails verification
// keeps the verifier's error.
func (s *HTTPServer) requireBearer(c *fiber.Ctx) error {
	scheme, token, ok := strings.Cut(strings.TrimSpace(c.Get(common.AuthorizationHeaderName)), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) || token == "" {
		return common.ErrMissingToken
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}

	c.SetUserContext(auth.WithClaims(c.UserContext(), claims))

	return c.Next()
}

// securityHeaders lets OAuth popups talk back to the storefront page.
func securityHeaders(c *fiber.Ctx) error {
	c.Set("Cross-Origin-Opener-Policy", "same-origin-allow-popups")
	c.Set("Cross-Origin-Embedder-Policy", "require-corp")
	return c.Next()
}

// observe logs one line per request and records it in the metrics. Errors
// are rendered here so the logged status is the one sent.
func (s *HTTPServer) observe(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := s.errorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	elapsed := time.Since(start)
	route := c.Route().Path

	s.metrics.observe(c.Method(), route, status, elapsed)

	requestID, _ := c.Locals("requestid").(string)
	s.logger.Info(c.UserContext(), "request served",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration", elapsed.String(),
		"request_id", requestID,
	)

	return nil
}

// requireUserID returns the caller id from the uid header.
func requireUserID(c *fiber.Ctx) (string, error) {
	uid := strings.TrimSpace(c.Get(common.UserIDHeaderName))
	if uid == "" {
		return "", fieldError(common.UserIDHeaderName, "header is required")
	}
	// header values alias fasthttp buffers that are reused after the request
	return strings.Clone(uid), nil
}
