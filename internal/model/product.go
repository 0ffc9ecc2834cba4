package model

type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Email       string   `json:"email"`
	Images      []string `json:"images"`
}

// CartItem is a cart line. The backend populates productId with the product.
type CartItem struct {
	Product  Product `json:"productId"`
	Quantity int     `json:"quantity"`
}

func (c CartItem) LineTotal() float64 {
	return c.Product.Price * float64(c.Quantity)
}
