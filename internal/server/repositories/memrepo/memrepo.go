// Package memrepo is an in-memory RepositoryManager for service and handler
// tests. It mirrors the PostgreSQL repositories' error contract: missing rows
// yield common.ErrorNotFound and duplicate emails common.ErrAlreadyExists.
package memrepo

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/coupons"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/deliveries"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/orders"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/products"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/users"
)

type purchaseLine struct {
	purchaseID string
	line       models.OrderLine
}

// Store holds every table. The zero value is not usable, call New.
type Store struct {
	mu sync.Mutex

	err error

	users      map[string]*models.User
	deliveries []models.Delivery
	nextDelID  int64
	coupons    []models.Coupon
	products   []models.Product
	orders     map[string]models.Order
	customers  map[string]models.Customer
	details    map[string]models.DeliveryDetail
	payments   map[string]models.Payment
	lines      []purchaseLine
	reviews    map[string]bool
}

func New() *Store {
	return &Store{
		users:     make(map[string]*models.User),
		orders:    make(map[string]models.Order),
		customers: make(map[string]models.Customer),
		details:   make(map[string]models.DeliveryDetail),
		payments:  make(map[string]models.Payment),
		reviews:   make(map[string]bool),
	}
}

// FailWith makes every subsequent repository call return err (nil resets).
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) RunMigrations(context.Context, *sql.DB) error { return nil }

func (s *Store) Users(dbx.DBTX) users.Repository           { return (*userRepo)(s) }
func (s *Store) Deliveries(dbx.DBTX) deliveries.Repository { return (*deliveryRepo)(s) }
func (s *Store) Coupons(dbx.DBTX) coupons.Repository       { return (*couponRepo)(s) }
func (s *Store) Products(dbx.DBTX) products.Repository     { return (*productRepo)(s) }
func (s *Store) Orders(dbx.DBTX) orders.Repository         { return (*orderRepo)(s) }

// --- seeding ---

func (s *Store) AddCoupon(c models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons = append(s.coupons, c)
}

func (s *Store) AddProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

func (s *Store) AddOrder(o models.Order, c models.Customer, d models.DeliveryDetail, p *models.Payment, lines ...models.OrderLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.PurchaseID] = o
	s.customers[o.CustomerID] = c
	s.details[o.DeliveryID] = d
	if p != nil {
		s.payments[o.PayID] = *p
	}
	for _, l := range lines {
		s.lines = append(s.lines, purchaseLine{purchaseID: o.PurchaseID, line: l})
	}
}

func (s *Store) AddReview(purchaseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[purchaseID] = true
}

// --- users ---

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, fmt.Errorf("%w: users_email_key", common.ErrAlreadyExists)
		}
	}

	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	s.users[user.ID] = &cp
	return user, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	u, ok := s.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) ListEmails(_ context.Context) ([]string, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	all := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].Email < all[j].Email
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	emails := make([]string, 0, len(all))
	for _, u := range all {
		emails = append(emails, u.Email)
	}
	return emails, nil
}

func (r *userRepo) Update(_ context.Context, userID string, upd *models.UserUpdate) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	u, ok := s.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Email != nil {
		for id, other := range s.users {
			if id != userID && other.Email == *upd.Email {
				return nil, fmt.Errorf("%w: users_email_key", common.ErrAlreadyExists)
			}
		}
	}

	next := *u
	next.Phone = upd.Phone
	next.MobilePhone = upd.MobilePhone
	next.FromStore = upd.FromStore
	next.IntroducedBy = upd.IntroducedBy
	if upd.UserName != nil {
		next.UserName = *upd.UserName
	}
	if upd.Email != nil {
		next.Email = *upd.Email
	}
	if upd.SetBirthday {
		next.Birthday = upd.Birthday
	}
	next.UpdatedAt = time.Now()

	s.users[userID] = &next
	cp := next
	return &cp, nil
}

// --- deliveries ---

type deliveryRepo Store

func (r *deliveryRepo) EnsureDefault(_ context.Context, owner string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	for _, d := range s.deliveries {
		if d.Owner == owner && d.IsDefault {
			return nil
		}
	}

	s.nextDelID++
	now := time.Now()
	s.deliveries = append(s.deliveries, models.Delivery{
		ID: s.nextDelID, Owner: strings.Clone(owner), IsDefault: true, CreatedAt: now, UpdatedAt: now,
	})
	return nil
}

func (r *deliveryRepo) ListByOwner(_ context.Context, owner string) ([]models.Delivery, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	result := make([]models.Delivery, 0)
	for _, d := range s.deliveries {
		if d.Owner == owner {
			result = append(result, d)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].IsDefault != result[j].IsDefault {
			return result[i].IsDefault
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *deliveryRepo) Update(_ context.Context, d *models.Delivery) (*models.Delivery, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	for i := range s.deliveries {
		cur := &s.deliveries[i]
		if cur.ID != d.ID || cur.Owner != d.Owner {
			continue
		}
		cur.RecipientName = d.RecipientName
		cur.RecipientPhone = d.RecipientPhone
		cur.Address = d.Address
		cur.City = d.City
		cur.UpdatedAt = time.Now()
		cp := *cur
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

// --- coupons ---

type couponRepo Store

func (r *couponRepo) List(_ context.Context) ([]models.Coupon, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	result := append([]models.Coupon{}, s.coupons...)
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *couponRepo) GetByCode(_ context.Context, code string) (*models.Coupon, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	for _, c := range s.coupons {
		if c.Code == code {
			cp := c
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- products ---

type productRepo Store

func (r *productRepo) ListCategories(_ context.Context) ([]string, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			result = append(result, p.Category)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (r *productRepo) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	result := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			p.Images = append([]string{}, p.Images...)
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *productRepo) GetByID(_ context.Context, productID int64) (*models.Product, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	for _, p := range s.products {
		if p.ID == productID {
			p.Images = append([]string{}, p.Images...)
			return &p, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- orders ---

type orderRepo Store

func (r *orderRepo) GetOrder(_ context.Context, purchaseID string) (*models.Order, error) {
	return lookup((*Store)(r), func(s *Store) (models.Order, bool) { o, ok := s.orders[purchaseID]; return o, ok })
}

func (r *orderRepo) GetCustomer(_ context.Context, customerID string) (*models.Customer, error) {
	return lookup((*Store)(r), func(s *Store) (models.Customer, bool) { c, ok := s.customers[customerID]; return c, ok })
}

func (r *orderRepo) GetDeliveryDetail(_ context.Context, deliveryID string) (*models.DeliveryDetail, error) {
	return lookup((*Store)(r), func(s *Store) (models.DeliveryDetail, bool) { d, ok := s.details[deliveryID]; return d, ok })
}

func (r *orderRepo) GetPayment(_ context.Context, payID string) (*models.Payment, error) {
	return lookup((*Store)(r), func(s *Store) (models.Payment, bool) { p, ok := s.payments[payID]; return p, ok })
}

func (r *orderRepo) ListLines(_ context.Context, purchaseID string) ([]models.OrderLine, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	result := make([]models.OrderLine, 0)
	for _, l := range s.lines {
		if l.purchaseID == purchaseID {
			result = append(result, l.line)
		}
	}
	return result, nil
}

func (r *orderRepo) ListPurchaseIDs(_ context.Context, userID string) ([]string, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	seen := make(map[string]bool)
	result := make([]string, 0)
	for i := len(s.lines) - 1; i >= 0; i-- {
		l := s.lines[i]
		if l.line.UserID == userID && !seen[l.purchaseID] {
			seen[l.purchaseID] = true
			result = append(result, l.purchaseID)
		}
	}
	return result, nil
}

func (r *orderRepo) IsReviewed(_ context.Context, purchaseID string) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.reviews[purchaseID], nil
}

func lookup[T any](s *Store, get func(*Store) (T, bool)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	v, ok := get(s)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &v, nil
}
