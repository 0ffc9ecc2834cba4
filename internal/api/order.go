package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ghaggin/storefront/internal/model"
)

type ordersResponse struct {
	Orders []model.Order `json:"orders"`
}

type placeOrderRequest struct {
	Email     string `json:"email"`
	AddressID string `json:"addressId"`
}

func (c *Client) Orders(ctx context.Context, email string) ([]model.Order, error) {
	var out ordersResponse
	_, err := c.call(ctx, "orders", http.MethodGet, "/api/v2/orders/myorders", emailQuery(email), nil, &out)
	return out.Orders, err
}

func (c *Client) PlaceOrder(ctx context.Context, email, addressID string) error {
	_, err := c.call(ctx, "place_order", http.MethodPost, "/api/v2/orders/place-order", nil, placeOrderRequest{
		Email:     email,
		AddressID: addressID,
	}, nil)
	return err
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	_, err := c.call(ctx, "cancel_order", http.MethodPatch, "/api/v2/orders/cancel-order/"+url.PathEscape(orderID), nil, nil, nil)
	return err
}
