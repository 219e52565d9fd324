package enum

import (
	"database/sql/driver"
	"fmt"
)

// SettlementMethod is the channel through which money moved.
// Values outside this set are rejected at the boundary; downstream code
// only ever sees a parsed SettlementMethod.
type SettlementMethod string

const (
	SettlementCash         SettlementMethod = "cash"
	SettlementMobileMoney  SettlementMethod = "mobile_money"
	SettlementCard         SettlementMethod = "card"
	SettlementBankTransfer SettlementMethod = "bank_transfer"
)

// SettlementMethods lists every known settlement method.
func SettlementMethods() []SettlementMethod {
	return []SettlementMethod{
		SettlementCash,
		SettlementMobileMoney,
		SettlementCard,
		SettlementBankTransfer,
	}
}

// ParseSettlementMethod validates a raw tag against the known vocabulary.
func ParseSettlementMethod(raw string) (SettlementMethod, error) {
	m := SettlementMethod(raw)
	switch m {
	case SettlementCash, SettlementMobileMoney, SettlementCard, SettlementBankTransfer:
		return m, nil
	}
	return "", fmt.Errorf("unknown settlement method %q", raw)
}

// IsPhysicalCash reports whether the method settles into the physical drawer.
func (m SettlementMethod) IsPhysicalCash() bool {
	return m == SettlementCash
}

func (m SettlementMethod) String() string {
	return string(m)
}

func (m SettlementMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *SettlementMethod) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*m = SettlementMethod(v)
	case []byte:
		*m = SettlementMethod(v)
	case nil:
		*m = ""
	default:
		return fmt.Errorf("cannot scan %T into SettlementMethod", value)
	}
	return nil
}
