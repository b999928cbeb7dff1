package domain

import (
	"github.com/shopspring/decimal"

	"possystem/internal/money"
)

// Product is reference data; the terminal never mutates it.
type Product struct {
	Name    string          `db:"product_name"`
	Barcode string          `db:"ean13"`
	Price   decimal.Decimal `db:"price"`
}

// UnitPrice returns the product price in cents.
func (p Product) UnitPrice() money.Cents { return money.FromDecimal(p.Price) }

type Transaction struct {
	ID       string          `db:"transaction_id"`
	Date     string          `db:"transaction_date"` // YYYY-MM-DD
	Total    decimal.Decimal `db:"total_amount"`
	Username string          `db:"cashier_username"`
	Items    []TransactionItem
}

type TransactionItem struct {
	Name          string          `db:"item_name"`
	Quantity      int             `db:"quantity"`
	PricePerUnit  decimal.Decimal `db:"price_per_unit"`
	Barcode       string          `db:"ean13"`
	TransactionID string          `db:"transaction_id"`
}
