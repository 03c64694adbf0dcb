// Package warehouse holds the sample fulfilment models generated by the CLI
// catalog. Customers and orders reference each other, which exercises cycle
// detection.
package warehouse

import (
	"time"
)

type Address struct {
	ID         uint       `json:"id"`
	Street     string     `json:"street"`
	City       string     `json:"city"`
	PostalCode string     `json:"postal_code"`
	Country    string     `json:"country"`
	Location   [2]float64 `json:"location"`
	IsDefault  bool       `json:"is_default"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Customer struct {
	ID          uint       `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Addresses   []Address  `json:"addresses,omitempty"`
	Orders      []Order    `json:"orders,omitempty"`
}

type Product struct {
	ID         uint       `json:"id"`
	SKU        string     `json:"sku"`
	Name       string     `json:"name"`
	Price      int64      `json:"price"`
	Stock      int        `json:"stock"`
	WeightG    float64    `json:"weight_g"`
	Dimensions [3]float64 `json:"dimensions"`
}

type Order struct {
	ID              uint                `json:"id"`
	OrderNumber     string              `json:"order_number"`
	Currency        string              `json:"currency"`
	TotalAmount     int64               `json:"total_amount"`
	ShippingAddress Address             `json:"shipping_address"`
	Customer        *Customer           `json:"customer"`
	Items           []OrderItem         `json:"items"`
	Shipments       map[string]Shipment `json:"shipments"`
	PlacedAt        *time.Time          `json:"placed_at,omitempty"`
}

type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice int64   `json:"unit_price"`
	Product   Product `json:"product"`
}

type Shipment struct {
	Carrier  string        `json:"carrier"`
	Tracking string        `json:"tracking"`
	Transit  time.Duration `json:"transit"`
}
