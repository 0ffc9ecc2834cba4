package model

import "time"

const OrderStatusCancelled = "Cancelled"

type OrderItem struct {
	Product  string  `json:"product,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

type Order struct {
	ID              string      `json:"_id"`
	User            string      `json:"user,omitempty"`
	OrderItems      []OrderItem `json:"orderItems"`
	ShippingAddress Address     `json:"shippingAddress"`
	TotalAmount     float64     `json:"totalAmount"`
	OrderStatus     string      `json:"orderStatus"`
	CreatedAt       time.Time   `json:"createdAt"`
}

func (o Order) Cancelled() bool {
	return o.OrderStatus == OrderStatusCancelled
}
