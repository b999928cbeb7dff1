package repos

import (
	"errors"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// ErrDatabaseUnavailable is returned by OpenDB when the store cannot be reached.
var ErrDatabaseUnavailable = errors.New("database unavailable")

// OpenDB connects to the relational store. For sqlite the schema is created
// and demo reference data seeded; a mysql database must already be provisioned.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	singleSession(db)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	if driver != "sqlite" {
		return db, nil
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedProducts(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	return db, nil
}

// singleSession caps the pool at one connection for every driver: the
// terminal talks to the store over a single session, and each sqlite
// :memory: connection would otherwise be its own database.
func singleSession(db *sqlx.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Column order of users is part of the contract: id, username, password_hash, email, full_name
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  email TEXT,
  full_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  product_name TEXT NOT NULL,
  ean13 TEXT NOT NULL UNIQUE,
  price NUMERIC NOT NULL CHECK (price >= 0)
);

CREATE TABLE IF NOT EXISTS transactions(
  transaction_id TEXT NOT NULL,
  transaction_date TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  cashier_username TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_id   ON transactions(transaction_id);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(transaction_date);

CREATE TABLE IF NOT EXISTS transaction_items(
  item_name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price_per_unit NUMERIC NOT NULL,
  ean13 TEXT NOT NULL,
  transaction_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transaction_items_tx ON transaction_items(transaction_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedProducts inserts demo reference data (idempotent).
func seedProducts(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	products := []struct {
		Name, Barcode, Price string
	}{
		{"Milo Activ-Go 1kg", "4800016641503", "3.50"},
		{"Gardenia Classic White Bread", "9556466100018", "4.20"},
		{"Dutch Lady Full Cream Milk 1L", "9556040110014", "7.95"},
		{"Maggi Curry Instant Noodles 5s", "9556001030226", "6.80"},
		{"Spritzer Mineral Water 1.5L", "9556150001219", "1.90"},
	}
	for _, p := range products {
		if _, err := tx.Exec(`
			INSERT INTO products(product_name, ean13, price)
			VALUES(?, ?, ?)
			ON CONFLICT(ean13) DO NOTHING
		`, p.Name, p.Barcode, p.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// seedUsers ensures demo cashiers exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		Username, Email, FullName, Hash string
	}
	mk := func(username, email, fullName, raw string) (u, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		if err != nil {
			return u{}, err
		}
		return u{Username: username, Email: email, FullName: fullName, Hash: string(h)}, nil
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	log.Println("[seed] inserting demo cashiers")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	for _, raw := range [][4]string{
		{"cashier1", "cashier1@pos.test", "Ahmad Faris", "Passw0rd!"},
		{"cashier2", "cashier2@pos.test", "Lim Wei Jie", "Passw0rd!"},
	} {
		x, err := mk(raw[0], raw[1], raw[2], raw[3])
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO users(username, password_hash, email, full_name)
			VALUES(?, ?, ?, ?)
			ON CONFLICT(username) DO NOTHING
		`, x.Username, x.Hash, x.Email, x.FullName); err != nil {
			return err
		}
	}
	return tx.Commit()
}
