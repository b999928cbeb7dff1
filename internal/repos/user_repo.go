package repos

import (
	"possystem/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// ByUsername returns sql.ErrNoRows when no such user exists.
func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id, username, password_hash, COALESCE(email,'') AS email, full_name
		FROM users
		WHERE username = ?
	`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
