package payment

import (
	"fmt"
	"time"
)

// AddDays returns the date n days after t
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// FormatDateBR formats a date the way the boleto generator expects
// (dd/mm/yyyy)
func FormatDateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatAmountBRL formats a whole-real amount in the convention the
// payment services expect ("R$ 2000,00")
func FormatAmountBRL(amount int) string {
	return fmt.Sprintf("R$ %d,00", amount)
}
