package enum

import (
	"database/sql/driver"
	"fmt"
)

// RevenueKind distinguishes sales of physical goods (which may decrement
// stock) from services (which never touch inventory).
type RevenueKind string

const (
	RevenueGood    RevenueKind = "good"
	RevenueService RevenueKind = "service"
)

// ParseRevenueKind validates a raw tag against the known vocabulary.
func ParseRevenueKind(raw string) (RevenueKind, error) {
	k := RevenueKind(raw)
	switch k {
	case RevenueGood, RevenueService:
		return k, nil
	}
	return "", fmt.Errorf("unknown revenue kind %q", raw)
}

func (k RevenueKind) String() string {
	return string(k)
}

func (k RevenueKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *RevenueKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*k = RevenueKind(v)
	case []byte:
		*k = RevenueKind(v)
	case nil:
		*k = ""
	default:
		return fmt.Errorf("cannot scan %T into RevenueKind", value)
	}
	return nil
}
