package model

import "database/sql/driver"

// ContactInfo is a party's contact snapshot taken when the booking is created.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c ContactInfo) Value() (driver.Value, error) {
	return jsonValue(c)
}

func (c *ContactInfo) Scan(src any) error {
	return scanJSON(src, c)
}
