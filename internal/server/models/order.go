package models

// Order is the header row of a purchase.
type Order struct {
	PurchaseID   string `json:"purchaseId"`
	CustomerID   string `json:"customerId"`
	DeliveryID   string `json:"deliverId"`
	DeliveryWay  string `json:"deliveryWay"`
	DeliverySite string `json:"deliverySite"`
	PayWay       string `json:"payWay"`
	PayID        string `json:"-"`
}

type Customer struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
}

type DeliveryDetail struct {
	RecipientName  string `json:"recipientName"`
	RecipientPhone string `json:"recipientPhone"`
	Address        string `json:"address"`
	City           string `json:"city"`
}

// Payment exposes only what a customer needs to recognise the card.
type Payment struct {
	CardLast4  string `json:"cardLast4"`
	CardHolder string `json:"cardHolder"`
	Expiry     string `json:"expiry"`
}

// OrderLine is a purchased product joined with its catalog data.
type OrderLine struct {
	ProductID     int64  `json:"productId"`
	Quantity      int64  `json:"quantity"`
	ProductName   string `json:"productName"`
	OriginalPrice int64  `json:"originalPrice"`
	SalePrice     int64  `json:"salePrice"`
	UserID        string `json:"userId"`
	ImageKey      string `json:"-"`
	ImageURL      string `json:"imagePath"`
}

// OrderDetails is everything shown on the order detail page.
type OrderDetails struct {
	OrderInfo    Order           `json:"orderInfo"`
	CustomerInfo *Customer       `json:"customerInfo"`
	DeliveryInfo *DeliveryDetail `json:"deliveryInfo"`
	PaymentInfo  *Payment        `json:"paymentInfo"`
	ProductInfo  []OrderLine     `json:"productInfo"`
}
