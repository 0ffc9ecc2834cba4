package storefront

import (
	"testing"

	"github.com/ghaggin/storefront/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	assert := assert.New(t)

	s := summarize([]model.CartItem{
		{Product: model.Product{Price: 10}, Quantity: 2},
		{Product: model.Product{Price: 5}, Quantity: 1},
	})
	assert.InDelta(25.0, s.Subtotal, 1e-9)
	assert.InDelta(5.99, s.Shipping, 1e-9)
	assert.InDelta(1.75, s.Tax, 1e-9)
	assert.InDelta(32.74, s.Total, 1e-9)
}

func TestSummarize_empty(t *testing.T) {
	assert.Equal(t, Summary{}, summarize(nil))
}

func TestParseQuantity(t *testing.T) {
	for in, want := range map[string]int{
		"3":   3,
		"1":   1,
		"0":   1,
		"-4":  1,
		"":    1,
		"abc": 1,
	} {
		assert.Equal(t, want, parseQuantity(in), in)
	}
}

func TestImageURL(t *testing.T) {
	const base = "http://localhost:8000"
	assert.Equal(t, "", imageURL(base, ""))
	assert.Equal(t, "https://cdn.example.com/a.png", imageURL(base, "https://cdn.example.com/a.png"))
	assert.Equal(t, base+"/products/a.png", imageURL(base, "/products/a.png"))
	assert.Equal(t, base+"/products/a.png", imageURL(base, "products/a.png"))
}

func TestFilterOrders(t *testing.T) {
	orders := []model.Order{
		{ID: "1", OrderStatus: "Processing"},
		{ID: "2", OrderStatus: model.OrderStatusCancelled},
		{ID: "3", OrderStatus: "Delivered"},
	}

	ids := func(os []model.Order) []string {
		var out []string
		for _, o := range os {
			out = append(out, o.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3"}, ids(filterOrders(orders, tabAll)))
	assert.Equal(t, []string{"1", "3"}, ids(filterOrders(orders, tabActive)))
	assert.Equal(t, []string{"2"}, ids(filterOrders(orders, tabCancelled)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(filterOrders(orders, "bogus")))

	assert.Equal(t, tabAll, normalizeTab("bogus"))
	assert.Equal(t, tabActive, normalizeTab(tabActive))
}
