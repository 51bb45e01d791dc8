package domain

import "time"

// User is an account that can manage projects. Email is stored lowercased
// and Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}
