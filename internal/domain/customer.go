package domain

import (
	"github.com/google/uuid"
)

type Address struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
}

type Customer struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Address   Address   `json:"address"`

	// Source is the path of the file the record was read from.
	Source string `json:"source,omitempty"`
	// Missing holds the target fields whose source value was absent (null).
	Missing []string `json:"missing,omitempty"`
}

// HasMissing reports whether any mapped field had no source value.
func (c Customer) HasMissing() bool {
	return len(c.Missing) > 0
}
