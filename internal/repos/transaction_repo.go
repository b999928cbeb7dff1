package repos

import (
	"possystem/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TransactionRepo struct{ db *sqlx.DB }

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// Save writes the header and all line items, then commits once.
// Items carry no transaction id of their own; the header's is used.
// Ids are second-resolution timestamps and may repeat, so nothing here
// treats transaction_id as unique.
func (r *TransactionRepo) Save(t domain.Transaction) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExec(`
		INSERT INTO transactions (transaction_id, transaction_date, total_amount, cashier_username)
		VALUES (:transaction_id, :transaction_date, :total_amount, :cashier_username)
	`, t); err != nil {
		return err
	}

	if len(t.Items) > 0 {
		items := make([]domain.TransactionItem, len(t.Items))
		for i, it := range t.Items {
			it.TransactionID = t.ID
			items[i] = it
		}
		// batch insert: sqlx expands the VALUES tuple once per element
		if _, err := tx.NamedExec(`
			INSERT INTO transaction_items (item_name, quantity, price_per_unit, ean13, transaction_id)
			VALUES (:item_name, :quantity, :price_per_unit, :ean13, :transaction_id)
		`, items); err != nil {
			return err
		}
	}
	return tx.Commit()
}
