// Package store holds the sample shop models generated by the CLI catalog
// and used by the examples.
package store

import (
	"time"
)

// Product is an item for sale. Prices are in cents.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Inventory   int       `json:"inventory_count"`
	Category    *Category `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category forms a tree through Parent and Children.
type Category struct {
	Name     string     `json:"name"`
	Parent   *Category  `json:"parent,omitempty"`
	Children []Category `json:"children,omitempty"`
}

type Customer struct {
	ID          int64             `json:"id"`
	Email       string            `json:"email"`
	FullName    string            `json:"full_name"`
	Address     *string           `json:"address"`
	IsActive    bool              `json:"is_active"`
	Preferences map[string]string `json:"preferences"`
	Notifier    Notifier          `json:"-"`
	Meta        struct {
		Source string   `json:"source"`
		Labels []string `json:"labels"`
	} `json:"meta"`
}

type Order struct {
	ID         int64         `json:"id"`
	CustomerID int64         `json:"customer_id"`
	Status     OrderStatus   `json:"status"`
	Priority   Priority      `json:"priority"`
	TotalCents int64         `json:"total_cents"`
	Items      []OrderItem   `json:"items"`
	Notes      []string      `json:"notes,omitempty"`
	OrderedAt  time.Time     `json:"ordered_at"`
	Handling   time.Duration `json:"handling"`
}

// OrderItem snapshots the price of a product at the time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Priority is an integer enum, only the declared values are valid.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityNormal
	PriorityHigh
)

func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items  []T    `json:"items"`
	Total  int    `json:"total"`
	Cursor string `json:"cursor"`
}

// Notifier delivers order updates to a customer.
type Notifier interface {
	Notify(order Order) error
}

type EmailNotifier struct {
	Address string `json:"address"`
}

func (n *EmailNotifier) Notify(Order) error {
	return nil
}

// Cart is created through NewCart, which stamps its creation time.
type Cart struct {
	CustomerID int64       `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	created    time.Time
}

func NewCart(customerID int64) *Cart {
	return &Cart{CustomerID: customerID, created: time.Now()}
}

// Created returns when the cart was created.
func (c *Cart) Created() time.Time {
	return c.created
}
