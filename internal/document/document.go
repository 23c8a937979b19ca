// Package document renders quotes and orders as PDF.
package document

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field is a label/value pair printed in the header block or totals table.
type Field struct {
	Label string
	Value string
}

type Party struct {
	Heading string
	Name    string
	Lines   []string
}

// LineItem holds percentages in Tax and Discount.
type LineItem struct {
	Name        string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Tax         decimal.Decimal
	Discount    decimal.Decimal
	Amount      decimal.Decimal
}

type Document struct {
	Title    string
	Number   string
	Date     time.Time
	LogoURL  string
	Currency string
	Meta     []Field
	From     Party
	To       Party
	Items    []LineItem
	Totals   []Field
	Notes    string
	Terms    string
}

// FileName returns a download name such as quote-001.pdf.
func FileName(kind, number string) string {
	if number == "" {
		number = "draft"
	}
	return kind + "-" + number + ".pdf"
}

// Money formats v with two decimals and an optional currency code prefix.
func Money(currency string, v decimal.Decimal) string {
	if currency == "" {
		return v.StringFixed(2)
	}
	return currency + " " + v.StringFixed(2)
}
