package pos_test

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"possystem/internal/domain"
	"possystem/internal/pos"
)

type lookupFunc func(ean13 string) (domain.Product, error)

func (f lookupFunc) ByBarcode(ean13 string) (domain.Product, error) { return f(ean13) }

func product(name, ean13, price string) domain.Product {
	return domain.Product{Name: name, Barcode: ean13, Price: decimal.RequireFromString(price)}
}

// catalog is the reference data every test terminal scans against.
func catalog() lookupFunc {
	byCode := map[string]domain.Product{}
	for _, p := range []domain.Product{
		product("Milo Activ-Go 1kg", "4800016641503", "3.50"),
		product("Gardenia Classic White Bread", "9556466100018", "4.20"),
		product("Dutch Lady Full Cream Milk 1L", "9556040110014", "7.95"),
		product("Jasmine Rice 5kg", "9556000000015", "15.00"),
	} {
		byCode[p.Barcode] = p
	}
	return func(ean13 string) (domain.Product, error) {
		p, ok := byCode[ean13]
		if !ok {
			return domain.Product{}, sql.ErrNoRows
		}
		return p, nil
	}
}

type memStore struct {
	saved []domain.Transaction
	err   error
}

func (s *memStore) Save(t domain.Transaction) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, t)
	return nil
}

var saleTime = time.Date(2026, time.March, 7, 9, 5, 3, 0, time.UTC)

func testOptions() pos.Options {
	return pos.Options{
		Currency:     "RM",
		StoreName:    "Kedai Runcit Maju",
		StoreAddress: "12 Jalan Ampang, Kuala Lumpur",
		Footer:       "All prices are inclusive to 6% service tax\nThank you for your purchase!",
		Now:          func() time.Time { return saleTime },
	}
}

func newTestTerminal(store *memStore) *pos.Terminal {
	return pos.NewTerminal("cashier1", "Ahmad Faris", catalog(), store, testOptions())
}
