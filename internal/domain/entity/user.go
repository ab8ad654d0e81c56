package entity

import "time"

// User is the credential record of an account. It carries the password hash and
// must be projected to a profile before leaving the service.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpdateFields lists the fields of a partial update. Nil fields are left as they are.
type UpdateFields struct {
	Name     *string
	Email    *string
	Password *string
}

func (f UpdateFields) IsEmpty() bool {
	return f.Name == nil && f.Email == nil && f.Password == nil
}
