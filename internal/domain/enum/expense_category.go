package enum

import (
	"database/sql/driver"
	"fmt"
)

// ExpenseCategory classifies an outgoing payment. CategoryStockPurchase is
// distinguished: it may carry an inventory increment alongside the expense.
type ExpenseCategory string

const (
	CategoryStockPurchase ExpenseCategory = "stock_purchase"
	CategorySalary        ExpenseCategory = "salary"
	CategoryRent          ExpenseCategory = "rent"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryMaintenance   ExpenseCategory = "maintenance"
	CategoryOther         ExpenseCategory = "other"
)

// ExpenseCategories lists every known expense category.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryStockPurchase,
		CategorySalary,
		CategoryRent,
		CategoryUtilities,
		CategoryTransport,
		CategoryMaintenance,
		CategoryOther,
	}
}

// ParseExpenseCategory validates a raw tag against the known vocabulary.
func ParseExpenseCategory(raw string) (ExpenseCategory, error) {
	c := ExpenseCategory(raw)
	switch c {
	case CategoryStockPurchase, CategorySalary, CategoryRent, CategoryUtilities,
		CategoryTransport, CategoryMaintenance, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("unknown expense category %q", raw)
}

func (c ExpenseCategory) String() string {
	return string(c)
}

func (c ExpenseCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ExpenseCategory) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*c = ExpenseCategory(v)
	case []byte:
		*c = ExpenseCategory(v)
	case nil:
		*c = ""
	default:
		return fmt.Errorf("cannot scan %T into ExpenseCategory", value)
	}
	return nil
}
