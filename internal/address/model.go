package address

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidAddress = errors.New("invalid delivery address")

// Address is the structured delivery address stored on every order.
// It is serialized to JSON only at the persistence boundary; the rest of
// the codebase always works with the struct.
type Address struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (a Address) Validate() error {
	if a.Street == "" || a.City == "" || a.State == "" || a.PostalCode == "" {
		return fmt.Errorf("%w: street, city, state and postal code are required", ErrInvalidAddress)
	}
	if a.Latitude != nil && (*a.Latitude < -90 || *a.Latitude > 90) {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidAddress)
	}
	if a.Longitude != nil && (*a.Longitude < -180 || *a.Longitude > 180) {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidAddress)
	}
	return nil
}

// Value implements driver.Valuer so orders can store the address as JSONB.
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for reading the JSONB column back.
func (a *Address) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = Address{}
		return nil
	default:
		return fmt.Errorf("unsupported scan type %T for Address", src)
	}
}
