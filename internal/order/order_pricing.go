package order

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Price fills the derived money fields of item:
//
//	subtotal       = unitPrice * quantity
//	taxAmount      = subtotal * taxRate / 100
//	discountAmount = subtotal * discountRate / 100
//	totalAmount    = subtotal + taxAmount - discountAmount
//
// Each result is rounded half away from zero to cents.
func Price(item *OrderItem) {
	subtotal := item.UnitPrice.Mul(item.Quantity)
	tax := subtotal.Mul(item.TaxRate).Div(hundred)
	discount := subtotal.Mul(item.DiscountRate).Div(hundred)

	item.Subtotal = subtotal.Round(2)
	item.TaxAmount = tax.Round(2)
	item.DiscountAmount = discount.Round(2)
	item.TotalAmount = subtotal.Add(tax).Sub(discount).Round(2)
}

// Totals sums the priced items into the order header.
func Totals(o *Order) {
	o.Subtotal = decimal.Zero
	o.TaxAmount = decimal.Zero
	o.DiscountAmount = decimal.Zero
	o.TotalAmount = decimal.Zero
	for _, it := range o.Items {
		o.Subtotal = o.Subtotal.Add(it.Subtotal)
		o.TaxAmount = o.TaxAmount.Add(it.TaxAmount)
		o.DiscountAmount = o.DiscountAmount.Add(it.DiscountAmount)
		o.TotalAmount = o.TotalAmount.Add(it.TotalAmount)
	}
}
