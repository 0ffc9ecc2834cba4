package storefront

import (
	"strconv"

	"github.com/ghaggin/storefront/internal/model"
)

const (
	shippingFee = 5.99
	taxRate     = 0.07
)

type Summary struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

func summarize(items []model.CartItem) Summary {
	var s Summary
	for _, item := range items {
		s.Subtotal += item.LineTotal()
	}
	if s.Subtotal > 0 {
		s.Shipping = shippingFee
	}
	s.Tax = s.Subtotal * taxRate
	s.Total = s.Subtotal + s.Shipping + s.Tax
	return s
}

// cartLine is a cart item as rendered, with its stepper values.
type cartLine struct {
	model.CartItem
	Image     string
	Increment int
	Decrement int
}

func (s *Storefront) cartLines(items []model.CartItem) []cartLine {
	lines := make([]cartLine, 0, len(items))
	for _, item := range items {
		line := cartLine{
			CartItem:  item,
			Increment: item.Quantity + 1,
			Decrement: clampQuantity(item.Quantity - 1),
		}
		if len(item.Product.Images) > 0 {
			line.Image = imageURL(s.client.BaseURL(), item.Product.Images[0])
		}
		lines = append(lines, line)
	}
	return lines
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// parseQuantity reads a form quantity; anything unusable counts as 1.
func parseQuantity(v string) int {
	q, err := strconv.Atoi(v)
	if err != nil {
		return 1
	}
	return clampQuantity(q)
}
