package domain

import (
	"encoding/json"
	"strings"
)

// Resource names one of the collections served by the backend
type Resource string

const (
	ResourceCategories Resource = "categories"
	ResourceProducts   Resource = "products"
	ResourceOrders     Resource = "orders"
)

// AllResources lists every collection in load order
var AllResources = []Resource{ResourceCategories, ResourceProducts, ResourceOrders}

// Category represents a product category
type Category struct {
	ID          string `json:"_id,omitempty" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug,omitempty" yaml:"slug"`
	Description string `json:"description" yaml:"description"`
}

// Key returns the stable identity of the category
func (c Category) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Slug
}

// CategoryRef is the category embedded in a product. The backend sends
// either a bare id or a populated object.
type CategoryRef struct {
	ID   string `json:"_id,omitempty" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name"`
}

// UnmarshalJSON accepts both "id" and {"_id": ..., "name": ...}
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = CategoryRef{ID: id}
		return nil
	}
	type plain CategoryRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = CategoryRef(p)
	return nil
}

// DiscountType is how a product discount is applied
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// StockLevel buckets a product's stock
type StockLevel string

const (
	StockOut StockLevel = "out"
	StockLow StockLevel = "low"
	StockIn  StockLevel = "in"
)

// LowStockThreshold is the stock count under which a product counts as low
const LowStockThreshold = 10

// Image is a product picture hosted by the backend
type Image struct {
	ID  string `json:"_id,omitempty" yaml:"id"`
	URL string `json:"url" yaml:"url"`
}

// Product is a catalogue entry
type Product struct {
	ID               string       `json:"_id,omitempty" yaml:"id"`
	Name             string       `json:"name" yaml:"name"`
	Brand            string       `json:"brand" yaml:"brand"`
	SKU              string       `json:"sku" yaml:"sku"`
	Slug             string       `json:"slug,omitempty" yaml:"slug"`
	ShortDescription string       `json:"shortDescription" yaml:"short_description"`
	Description      string       `json:"description" yaml:"description"`
	Category         CategoryRef  `json:"category" yaml:"category"`
	Price            float64      `json:"price" yaml:"price"`
	DiscountType     DiscountType `json:"discountType,omitempty" yaml:"discount_type"`
	DiscountValue    float64      `json:"discountValue" yaml:"discount_value"`
	Stock            int          `json:"stock" yaml:"stock"`
	TotalReviews     int          `json:"totalReviews" yaml:"total_reviews"`
	IsNew            bool         `json:"isNew" yaml:"is_new"`
	IsSale           bool         `json:"isSale" yaml:"is_sale"`
	IsLimited        bool         `json:"isLimited" yaml:"is_limited"`
	IsHot            bool         `json:"isHot" yaml:"is_hot"`
	IsFeatured       bool         `json:"isFeatured" yaml:"is_featured"`
	IsBestSelling    bool         `json:"isBestSelling" yaml:"is_best_selling"`
	Colors           []string     `json:"color" yaml:"colors"`
	Sizes            []string     `json:"size" yaml:"sizes"`
	Images           []Image      `json:"image,omitempty" yaml:"images"`
}

// Key returns the stable identity of the product
func (p Product) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Slug
}

// FinalPrice is the price after discount, never below zero
func (p Product) FinalPrice() float64 {
	price := p.Price
	switch p.DiscountType {
	case DiscountPercentage:
		price -= p.Price * p.DiscountValue / 100
	case DiscountFixed:
		price -= p.DiscountValue
	}
	if price < 0 {
		return 0
	}
	return price
}

// HasDiscount reports whether the final price differs from the list price
func (p Product) HasDiscount() bool {
	return p.DiscountValue > 0 && p.FinalPrice() < p.Price
}

// StockLevel classifies the stock count
func (p Product) StockLevel() StockLevel {
	switch {
	case p.Stock <= 0:
		return StockOut
	case p.Stock < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// Flags returns the names of the marketing flags that are set
func (p Product) Flags() []string {
	var flags []string
	if p.IsNew {
		flags = append(flags, "new")
	}
	if p.IsSale {
		flags = append(flags, "sale")
	}
	if p.IsLimited {
		flags = append(flags, "limited")
	}
	if p.IsHot {
		flags = append(flags, "hot")
	}
	if p.IsFeatured {
		flags = append(flags, "featured")
	}
	if p.IsBestSelling {
		flags = append(flags, "best-selling")
	}
	return flags
}

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists the known statuses in display order
var OrderStatuses = []OrderStatus{StatusPending, StatusShipped, StatusCompleted, StatusCancelled}

// Normalized lowercases the status; unknown values are kept as they are
func (s OrderStatus) Normalized() OrderStatus {
	return OrderStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// PaymentMethod is how the customer paid
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
	PaymentCard   PaymentMethod = "card"
)

// Customer is the buyer and delivery address of an order
type Customer struct {
	FullName string `json:"fullName" yaml:"full_name"`
	Phone    string `json:"phone" yaml:"phone"`
	Address  string `json:"address" yaml:"address"`
}

// OrderItem is one line of an order
type OrderItem struct {
	ProductID string `json:"productId" yaml:"product_id"`
	Qty       int    `json:"qty" yaml:"qty"`
	Color     string `json:"color,omitempty" yaml:"color"`
	Size      string `json:"size,omitempty" yaml:"size"`
}

// Order is a customer order
type Order struct {
	ID            string        `json:"_id,omitempty" yaml:"id"`
	InvoiceID     string        `json:"invoiceId" yaml:"invoice_id"`
	Customer      Customer      `json:"customer" yaml:"customer"`
	Note          string        `json:"note,omitempty" yaml:"note"`
	PaymentMethod PaymentMethod `json:"paymentMethod" yaml:"payment_method"`
	Items         []OrderItem   `json:"items" yaml:"items"`
	Status        OrderStatus   `json:"status" yaml:"status"`
	TotalAmount   float64       `json:"totalAmount" yaml:"total_amount"`
}

// Key returns the stable identity of the order
func (o Order) Key() string {
	if o.ID != "" {
		return o.ID
	}
	return o.InvoiceID
}

// Quantity is the total number of units ordered
func (o Order) Quantity() int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty
	}
	return n
}

// ProductPayload is the body of a product update. Category is sent as an id.
type ProductPayload struct {
	Name             string       `json:"name"`
	Brand            string       `json:"brand"`
	SKU              string       `json:"sku"`
	ShortDescription string       `json:"shortDescription"`
	Description      string       `json:"description"`
	Category         string       `json:"category"`
	Price            float64      `json:"price"`
	DiscountType     DiscountType `json:"discountType"`
	DiscountValue    float64      `json:"discountValue"`
	Stock            int          `json:"stock"`
	IsNew            bool         `json:"isNew"`
	IsSale           bool         `json:"isSale"`
	IsLimited        bool         `json:"isLimited"`
	IsHot            bool         `json:"isHot"`
	IsFeatured       bool         `json:"isFeatured"`
	IsBestSelling    bool         `json:"isBestSelling"`
	Colors           []string     `json:"color"`
	Sizes            []string     `json:"size"`
}

// Payload converts the product into its update body. A missing discount type
// is sent as fixed.
func (p Product) Payload() ProductPayload {
	discountType := p.DiscountType
	if discountType == "" {
		discountType = DiscountFixed
	}
	return ProductPayload{
		Name:             p.Name,
		Brand:            p.Brand,
		SKU:              p.SKU,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Category:         p.Category.ID,
		Price:            p.Price,
		DiscountType:     discountType,
		DiscountValue:    p.DiscountValue,
		Stock:            p.Stock,
		IsNew:            p.IsNew,
		IsSale:           p.IsSale,
		IsLimited:        p.IsLimited,
		IsHot:            p.IsHot,
		IsFeatured:       p.IsFeatured,
		IsBestSelling:    p.IsBestSelling,
		Colors:           p.Colors,
		Sizes:            p.Sizes,
	}
}
