package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ghaggin/storefront/internal/model"
)

type cartResponse struct {
	Cart []model.CartItem `json:"cart"`
}

type addToCartRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Email     string `json:"email"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (c *Client) Cart(ctx context.Context, email string) ([]model.CartItem, error) {
	var out cartResponse
	_, err := c.call(ctx, "cart", http.MethodGet, "/api/v2/product/cartproducts", emailQuery(email), nil, &out)
	return out.Cart, err
}

func (c *Client) AddToCart(ctx context.Context, email, productID string, quantity int) error {
	_, err := c.call(ctx, "add_to_cart", http.MethodPost, "/api/v2/product/cart", nil, addToCartRequest{
		UserID:    email,
		ProductID: productID,
		Quantity:  quantity,
	}, nil)
	return err
}

func (c *Client) UpdateCartQuantity(ctx context.Context, email, productID string, quantity int) error {
	_, err := c.call(ctx, "update_cart_quantity", http.MethodPut, "/api/v2/product/cartproduct/quantity", nil, quantityRequest{
		Email:     email,
		ProductID: productID,
		Quantity:  quantity,
	}, nil)
	return err
}

func (c *Client) RemoveFromCart(ctx context.Context, email, productID string) error {
	_, err := c.call(ctx, "remove_from_cart", http.MethodDelete, "/api/v2/product/cart/"+url.PathEscape(productID), emailQuery(email), nil, nil)
	return err
}
