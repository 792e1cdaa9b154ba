package models

// Product is a catalog item. Images holds storage keys as read from the
// database; ImageURLs is filled by the service right before responding.
type Product struct {
	ID            int64    `json:"productId"`
	Category      string   `json:"category"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	OriginalPrice int64    `json:"originalPrice"`
	SalePrice     int64    `json:"salePrice"`
	Images        []string `json:"-"`
	ImageURLs     []string `json:"images"`
}
