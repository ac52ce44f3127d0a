// Package service declares the stateless capabilities the use cases depend on.
package service

// PasswordHasher protects the credentials stored alongside email accounts.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Check reports whether password matches a hash produced by Hash.
	Check(password, hash string) bool
}
