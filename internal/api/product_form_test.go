package api

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_multipart(t *testing.T) {
	var (
		fields map[string]string
		files  map[string]string
	)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v2/product/create-product", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		files = map[string]string{}
		for _, fh := range r.MultipartForm.File["images"] {
			f, err := fh.Open()
			if !assert.NoError(t, err) {
				return
			}
			b, _ := io.ReadAll(f)
			f.Close()
			files[fh.Filename] = string(b)
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true})
	}))

	err := c.CreateProduct(context.Background(), "a@b.com", ProductInput{
		Name:        "Blue Mug",
		Description: "A mug",
		Category:    "kitchen",
		Tags:        []string{"mug", "blue"},
		Price:       12.5,
		Stock:       3,
		Images:      []Upload{{Filename: "mug.png", Data: []byte("png")}},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"name":        "Blue Mug",
		"description": "A mug",
		"category":    "kitchen",
		"tags":        "mug,blue",
		"price":       "12.5",
		"stock":       "3",
		"email":       "a@b.com",
	}, fields)
	assert.Equal(t, map[string]string{"mug.png": "png"}, files)
}

func TestUpdateProduct(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v2/product/update-product/p1", r.URL.Path)
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Product not found"})
	}))

	err := c.UpdateProduct(context.Background(), "p1", "a@b.com", ProductInput{Name: "x"})
	assert.Equal(t, "Product not found", Message(err, ""))
}
