package models

// User is an account identity. Email is the login key and is compared
// exactly as stored.
type User struct {
	ID             int64  `db:"id" json:"id"`
	Email          string `db:"email" json:"email"`
	HashedPassword string `db:"hashed_password" json:"-"`
}
