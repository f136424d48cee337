package models

// User represents a registered account that can create and manage links.
type User struct {
	// Username is the unique identifier of the account.
	Username string
	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string
	// IsActive indicates whether the account is allowed to authenticate.
	IsActive bool
}
