package enum

import (
	"database/sql/driver"
	"fmt"
)

// MovementType tags the cause of an inventory quantity change.
type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSaleManual MovementType = "sale_manual"
	MovementAdjustment MovementType = "adjustment"
)

// ParseMovementType validates a raw tag against the known vocabulary.
func ParseMovementType(raw string) (MovementType, error) {
	t := MovementType(raw)
	switch t {
	case MovementPurchase, MovementSaleManual, MovementAdjustment:
		return t, nil
	}
	return "", fmt.Errorf("unknown movement type %q", raw)
}

func (t MovementType) String() string {
	return string(t)
}

func (t MovementType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MovementType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = MovementType(v)
	case []byte:
		*t = MovementType(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("cannot scan %T into MovementType", value)
	}
	return nil
}
