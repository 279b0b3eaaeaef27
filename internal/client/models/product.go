package models

import (
	"fmt"
	"strconv"
)

// Product is a catalog item owned by a user.
type Product struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Image       *string `json:"image"`
}

func (p Product) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

func (p Product) ImageURL() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}

// PriceLabel renders the price with two fraction digits, e.g. "R$ 10.50".
func (p Product) PriceLabel() string {
	return fmt.Sprintf("R$ %.2f", p.Price)
}

func (p Product) String() string {
	return fmt.Sprintf("%d\t%s\t%s", p.ID, p.Name, p.PriceLabel())
}

// ProductFields is the add-item form payload. Price is the raw validated text.
type ProductFields struct {
	Name        string
	Description string
	Price       string
}

// Form returns the multipart form values. Price is re-encoded as a decimal.
func (f ProductFields) Form() (map[string]string, error) {
	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", f.Price, err)
	}
	form := map[string]string{
		"name":  f.Name,
		"price": strconv.FormatFloat(price, 'f', -1, 64),
	}
	put(form, "description", f.Description)
	return form, nil
}
