package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// DeliveryAddress is the full copy of an address row captured on an order at
// checkout time. It is stored as JSONB and never re-reads the address table.
type DeliveryAddress struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Pincode  string  `json:"pincode"`
	State    string  `json:"state"`
	City     string  `json:"city"`
	Landmark *string `json:"landmark,omitempty"`
	Address  string  `json:"address"`
}

func (d DeliveryAddress) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("delivery address: missing name")
	}
	if strings.TrimSpace(d.Phone) == "" {
		return fmt.Errorf("delivery address: missing phone")
	}
	if strings.TrimSpace(d.Pincode) == "" {
		return fmt.Errorf("delivery address: missing pincode")
	}
	if strings.TrimSpace(d.Address) == "" {
		return fmt.Errorf("delivery address: missing address")
	}
	return nil
}

// Value marshals the address copy into JSONB.
func (d DeliveryAddress) Value() (driver.Value, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

// Scan decodes the stored JSONB copy.
func (d *DeliveryAddress) Scan(value interface{}) error {
	if value == nil {
		*d = DeliveryAddress{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("delivery address: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, d)
}

func toBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
