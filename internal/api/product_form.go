package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Upload is an image file sent along with a product.
type Upload struct {
	Filename string
	Data     []byte
}

// ProductInput is what a seller submits to create or edit a product.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Tags        []string
	Price       float64
	Stock       int
	Images      []Upload
}

// multipartBody encodes in as the backend's multipart product form.
func (in ProductInput) multipartBody(email string) (*rawBody, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	fields := [][2]string{
		{"name", in.Name},
		{"description", in.Description},
		{"category", in.Category},
		{"tags", strings.Join(in.Tags, ",")},
		{"price", strconv.FormatFloat(in.Price, 'f', -1, 64)},
		{"stock", strconv.Itoa(in.Stock)},
		{"email", email},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, err
		}
	}

	for _, img := range in.Images {
		fw, err := mw.CreateFormFile("images", img.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(img.Data); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return &rawBody{contentType: mw.FormDataContentType(), data: buf.Bytes()}, nil
}

func (c *Client) CreateProduct(ctx context.Context, email string, in ProductInput) error {
	body, err := in.multipartBody(email)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, "create_product", http.MethodPost, "/api/v2/product/create-product", nil, body, nil)
	return err
}

func (c *Client) UpdateProduct(ctx context.Context, id, email string, in ProductInput) error {
	body, err := in.multipartBody(email)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, "update_product", http.MethodPut, "/api/v2/product/update-product/"+url.PathEscape(id), nil, body, nil)
	return err
}
