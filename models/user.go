package models

// User represents a registered account. PasswordHash holds a bcrypt
// hash and is never serialized or logged.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
