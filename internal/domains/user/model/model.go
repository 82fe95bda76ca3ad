package model

import "stagebook/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldRole     = "role"
	FieldFullName = "full_name"
	FieldPhone    = "phone"
	FieldActive   = "active"
)

// User is the read-only profile owned by the identity service.
type User struct {
	ID       string  `db:"id"`
	Email    string  `db:"email"`
	Role     string  `db:"role"`
	FullName *string `db:"full_name"`
	Phone    *string `db:"phone"`
	Active   bool    `db:"active"`
	model.Metadata
}

type ContactInfo struct {
	Name  string
	Email string
	Phone string
}

func (u *User) ContactInfo() ContactInfo {
	contact := ContactInfo{Email: u.Email}

	if u.FullName != nil {
		contact.Name = *u.FullName
	}

	if u.Phone != nil {
		contact.Phone = *u.Phone
	}

	return contact
}
