package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ghaggin/storefront/internal/model"
)

type productsResponse struct {
	Products []model.Product `json:"products"`
}

type productResponse struct {
	Product *model.Product `json:"product"`
}

func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var out productsResponse
	_, err := c.call(ctx, "products", http.MethodGet, "/api/v2/product/get-products", nil, nil, &out)
	return out.Products, err
}

func (c *Client) Product(ctx context.Context, id string) (*model.Product, error) {
	var out productResponse
	_, err := c.call(ctx, "product", http.MethodGet, "/api/v2/product/product/"+url.PathEscape(id), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	if out.Product == nil {
		return nil, ErrNotFound
	}
	return out.Product, nil
}

func (c *Client) MyProducts(ctx context.Context, email string) ([]model.Product, error) {
	var out productsResponse
	_, err := c.call(ctx, "my_products", http.MethodGet, "/api/v2/product/my-products", emailQuery(email), nil, &out)
	return out.Products, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.call(ctx, "delete_product", http.MethodDelete, "/api/v2/product/delete-product/"+url.PathEscape(id), nil, nil, nil)
	return err
}
