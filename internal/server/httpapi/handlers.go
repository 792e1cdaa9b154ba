package httpapi

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type validator interface {
	Validate() error
}

// decodeBody unmarshals the request body into dst and validates it when dst
// knows how. An empty body reads as {}; malformed JSON is reported on the
// "body" field.
func decodeBody(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	if err := c.App().Config().JSONDecoder(body, dst); err != nil {
		return fieldError("body", "malformed JSON: "+err.Error())
	}
	if v, ok := dst.(validator); ok {
		return fromValidation(v.Validate())
	}
	return nil
}

func (s *HTTPServer) register(c *fiber.Ctx) error {
	var p RegisterPayload
	if err := decodeBody(c, &p); err != nil {
		return err
	}

	user, token, err := s.svc.Users.Register(c.UserContext(), p.Input())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user registered",
		"token":   token,
		"newUser": user,
	})
}

func (s *HTTPServer) login(c *fiber.Ctx) error {
	var p LoginPayload
	if err := decodeBody(c, &p); err != nil {
		return err
	}

	user, token, err := s.svc.Users.Login(c.UserContext(), p.Email, p.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

func (s *HTTPServer) profile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c.UserContext())
	if !ok {
		return fiber.ErrUnauthorized
	}
	return c.JSON(fiber.Map{"user": claims})
}

func (s *HTTPServer) listEmails(c *fiber.Ctx) error {
	emails, err := s.svc.Users.ListEmails(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(emails)
}

func (s *HTTPServer) singleUserData(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		return fieldError("userId", "query parameter is required")
	}

	user, err := s.svc.Users.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *HTTPServer) findUser(c *fiber.Ctx) error {
	var p FindPayload
	if err := decodeBody(c, &p); err != nil {
		return err
	}

	id, err := s.svc.Users.FindUserID(c.UserContext(), p.Email)
	if err != nil {
		return err
	}
	return c.JSON(id)
}

func (s *HTTPServer) updateInformation(c *fiber.Ctx) error {
	uid, err := requireUserID(c)
	if err != nil {
		return err
	}

	var p UpdatePayload
	if err := decodeBody(c, &p); err != nil {
		return err
	}

	upd, err := p.Stage()
	if err != nil {
		return err
	}

	user, err := s.svc.Users.UpdateInformation(c.UserContext(), uid, upd)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *HTTPServer) getDeliverInfo(c *fiber.Ctx) error {
	uid, err := requireUserID(c)
	if err != nil {
		return err
	}

	list, err := s.svc.Deliveries.GetOrCreate(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (s *HTTPServer) updateDeliverInfo(c *fiber.Ctx) error {
	uid, err := requireUserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fieldError("id", "must be an integer")
	}

	var p DeliveryPayload
	if err := decodeBody(c, &p); err != nil {
		return err
	}

	d, err := s.svc.Deliveries.Update(c.UserContext(), &models.Delivery{
		ID:             id,
		Owner:          uid,
		RecipientName:  p.RecipientName,
		RecipientPhone: p.RecipientPhone,
		Address:        p.Address,
		City:           p.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (s *HTTPServer) listCoupons(c *fiber.Ctx) error {
	list, err := s.svc.Coupons.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (s *HTTPServer) getCoupon(c *fiber.Ctx) error {
	coupon, err := s.svc.Coupons.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(coupon)
}

func (s *HTTPServer) orderDetails(c *fiber.Ctx) error {
	details, err := s.svc.Orders.Details(c.UserContext(), c.Params("purchaseID"))
	if err != nil {
		return err
	}
	return c.JSON(details)
}

func (s *HTTPServer) orderIsReviewed(c *fiber.Ctx) error {
	reviewed, err := s.svc.Orders.IsReviewed(c.UserContext(), c.Params("purchaseID"))
	if err != nil {
		return err
	}

	message := "order has not been reviewed"
	if reviewed {
		message = "order has been reviewed"
	}

	return c.JSON(fiber.Map{"status": "success", "message": message, "isReviewed": reviewed})
}

func (s *HTTPServer) userOrders(c *fiber.Ctx) error {
	ids, err := s.svc.Orders.PurchaseIDs(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return c.JSON(fiber.Map{"status": "success", "message": "no orders found for this user", "data": ids})
	}
	return c.JSON(fiber.Map{"status": "success", "data": ids})
}

func (s *HTTPServer) listCategories(c *fiber.Ctx) error {
	list, err := s.svc.Products.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (s *HTTPServer) categoryProducts(c *fiber.Ctx) error {
	list, err := s.svc.Products.ByCategory(c.UserContext(), c.Params("category"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (s *HTTPServer) getProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("productId"), 10, 64)
	if err != nil {
		return fieldError("productId", "must be an integer")
	}

	p, err := s.svc.Products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}
