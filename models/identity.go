package models

// Identity is the authenticated caller as resolved from a valid
// session. Owner-scoped services take an Identity rather than a raw
// user id so the authorization check happens in exactly one place.
type Identity struct {
	UserID   int64
	Username string
}
