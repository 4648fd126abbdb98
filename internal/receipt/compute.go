package receipt

import (
	"github.com/shopspring/decimal"
)

// Payment statuses that settle in cash at handover rather than upfront.
const (
	noticeCashOnDelivery = "Please have the exact amount ready at the time of delivery."
	noticeInStoreCash    = "Please have the exact amount ready when you pick up your order."
)

// Default applied when the storefront omits the payment status entirely.
const defaultPaymentStatus = "Cash on Delivery"

// ReceiptView is the fully resolved content of an order receipt, ready
// for template interpolation. Everything here is display data; nothing
// is validated or clamped.
type ReceiptView struct {
	OrderID     string
	Total       decimal.Decimal
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	ShippingFee decimal.Decimal
	Discount    decimal.Decimal
	Donation    decimal.Decimal

	LineItems []LineItemView

	PaymentStatus string
	StatusBadge   StatusStyle
	Delivery      DeliveryInfo

	Shipping              AddressView
	Billing               AddressView
	HasBilling            bool
	BillingSameAsShipping bool

	// CashNotice is empty for prepaid orders.
	CashNotice string
}

// LineItemView is one display row of the items table.
type LineItemView struct {
	Name      string
	Quantity  int64
	SizeLabel string
	LineTotal decimal.Decimal
}

// AddressView mirrors Address with every field defaulted to the empty
// string when the source block is absent.
type AddressView struct {
	FullName     string
	AddressLine1 string
	City         string
	State        string
	Zip          string
	Country      string
	Phone        string
	Email        string
}

// ResolveTotal derives the canonical order total. With a non-zero
// subtotal the total is subtotal + tax + shippingFee + donation −
// discount; otherwise it falls back to the caller-supplied totalAmount.
// Results are rounded to 2 decimal places and negative totals are
// passed through unclamped.
func ResolveTotal(d *OrderDetails) decimal.Decimal {
	if !d.Subtotal.IsZero() {
		return d.Subtotal.Decimal.
			Add(d.Tax.Decimal).
			Add(d.ShippingFee.Decimal).
			Add(d.Donation.Decimal).
			Sub(d.Discount.Decimal).
			Round(2)
	}
	return d.TotalAmount.Round(2)
}

// LineTotal computes price × quantity for one item, rounded to 2
// decimal places independently of the order total.
func LineTotal(item LineItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(item.Quantity)).Round(2)
}

// ComputeReceipt resolves an order-details record into a complete
// receipt view. It is total over its input domain: missing fields
// default, malformed values have already coerced to zero, and unknown
// enum-like strings fall back to their default variant. It performs
// no I/O and never fails.
func ComputeReceipt(d *OrderDetails) ReceiptView {
	status := d.PaymentStatus
	if status == "" {
		status = defaultPaymentStatus
	}

	view := ReceiptView{
		OrderID:       d.OrderID,
		Total:         ResolveTotal(d),
		Subtotal:      d.Subtotal.Round(2),
		Tax:           d.Tax.Round(2),
		ShippingFee:   d.ShippingFee.Round(2),
		Discount:      d.Discount.Round(2),
		Donation:      d.Donation.Round(2),
		PaymentStatus: status,
		StatusBadge:   StyleForStatus(status),
		Delivery:      DescribeDelivery(d.DeliveryMethod),
		CashNotice:    cashNotice(status),
	}

	for _, item := range d.Items {
		view.LineItems = append(view.LineItems, LineItemView{
			Name:      item.Name,
			Quantity:  item.Quantity,
			SizeLabel: item.SelectedSize,
			LineTotal: LineTotal(item),
		})
	}

	view.Shipping = addressView(d.ShippingAddress)

	// Billing falls back to the shipping block when absent, which
	// collapses to the same-as-shipping marker below.
	billing := d.BillingAddress
	if billing.IsEmpty() {
		billing = d.ShippingAddress
	}
	if !billing.IsEmpty() {
		view.HasBilling = true
		view.Billing = addressView(billing)
		view.BillingSameAsShipping = sameAddress(d.ShippingAddress, billing)
	}

	return view
}

// FormatPrice renders a decimal as a dollar string with two decimals.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func cashNotice(status string) string {
	switch status {
	case "Cash on Delivery", "CASH ON DELIVERY":
		return noticeCashOnDelivery
	case "IN-STORE CASH":
		return noticeInStoreCash
	}
	return ""
}

// sameAddress is a display heuristic, not a structural comparison:
// matching name, first line, and city is treated as the same address
// even when phone or email differ.
func sameAddress(shipping, billing *Address) bool {
	if shipping == nil || billing == nil {
		return shipping == billing
	}
	return shipping.FullName == billing.FullName &&
		shipping.AddressLine1 == billing.AddressLine1 &&
		shipping.City == billing.City
}

func addressView(a *Address) AddressView {
	if a == nil {
		return AddressView{}
	}
	return AddressView{
		FullName:     a.FullName,
		AddressLine1: a.AddressLine1,
		City:         a.City,
		State:        a.State,
		Zip:          a.Zip,
		Country:      a.Country,
		Phone:        a.Phone,
		Email:        a.Email,
	}
}
