package domain

// LineItem is one product entry in the cart. The unit price is captured at the
// time the product is added; identity key is ProductID.
type LineItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// Total returns price times quantity for this line.
func (l LineItem) Total() float64 {
	return l.Price * float64(l.Quantity)
}
