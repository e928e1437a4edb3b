package domain

import "github.com/shopspring/decimal"

// Drink is one line of the bar's stock.
type Drink struct {
	ID int64 `json:"id"`

	// Name is set on creation and never changed afterwards.
	Name string `json:"name"`

	// Quantity is the number of units on hand.
	Quantity int64 `json:"quantity"`

	// Price is the unit selling price.
	Price decimal.Decimal `json:"price"`
}

// NewDrink creates a Drink that has not been persisted yet.
func NewDrink(name string, quantity int64, price decimal.Decimal) *Drink {
	return &Drink{
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
}

// Validate checks the stock and price bounds.
// An empty name is accepted here; rejecting it is up to the caller.
func (d *Drink) Validate() error {
	if d.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if d.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
