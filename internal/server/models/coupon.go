package models

import "time"

const (
	DiscountAmount  = "amount"
	DiscountPercent = "percent"
)

type Coupon struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	DiscountType  string     `json:"discountType"`
	DiscountValue int64      `json:"discountValue"`
	MinSpend      int64      `json:"minSpend"`
	StartsAt      *time.Time `json:"startsAt"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}
