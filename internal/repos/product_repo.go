package repos

import (
	"possystem/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ByBarcode looks a product up by its EAN-13. A miss is sql.ErrNoRows.
func (r *ProductRepo) ByBarcode(ean13 string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT product_name, ean13, price FROM products WHERE ean13 = ?`, ean13)
	return p, err
}
