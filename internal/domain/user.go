package domain

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Hash     string `db:"password_hash"`
	Email    string `db:"email"`
	FullName string `db:"full_name"`
}
