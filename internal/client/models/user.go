// Package models defines the wire types exchanged with the pricewatch backend.
package models

// User is the authenticated principal associated with the current session.
// Admin grants elevated query scope (all users' products and price history).
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// Credentials is the login/registration request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
